package ui

import (
	"reflect"
	"testing"
)

type styleKey struct{ control, property int32 }

// mapStyles is an in-memory style table.
type mapStyles map[styleKey]int64

func (m mapStyles) Get(control, property int32) int64 { return m[styleKey{control, property}] }
func (m mapStyles) Set(control, property int32, value int64) {
	m[styleKey{control, property}] = value
}

func TestPushPopStyles(t *testing.T) {
	tests := []struct {
		name  string
		props []styleProp
		live  map[styleKey]int64 // values while pushed
	}{
		{
			name:  "single",
			props: []styleProp{{0, 16, 20}},
			live:  map[styleKey]int64{{0, 16}: 20, {1, 2}: 7},
		},
		{
			name:  "several controls",
			props: []styleProp{{0, 16, 20}, {1, 2, 99}},
			live:  map[styleKey]int64{{0, 16}: 20, {1, 2}: 99},
		},
		{
			name:  "same property twice",
			props: []styleProp{{0, 16, 20}, {0, 16, 24}},
			live:  map[styleKey]int64{{0, 16}: 24, {1, 2}: 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			styles := mapStyles{{0, 16}: 10, {1, 2}: 7}
			before := mapStyles{{0, 16}: 10, {1, 2}: 7}

			saved := pushStyles(styles, tt.props)
			for k, want := range tt.live {
				if got := styles[k]; got != want {
					t.Errorf("while pushed %v = %d, want %d", k, got, want)
				}
			}

			popStyles(styles, saved)
			if !reflect.DeepEqual(styles, before) {
				t.Errorf("after pop styles = %v, want %v", styles, before)
			}
		})
	}
}

func TestWrappedLabelStylesRestore(t *testing.T) {
	styles := mapStyles{}
	props := wrappedLabelStyles(DefaultTheme())

	saved := pushStyles(styles, props)
	for _, p := range props {
		if got := styles.Get(p.control, p.property); got != p.value {
			t.Errorf("style (%d, %d) = %d, want %d", p.control, p.property, got, p.value)
		}
	}

	popStyles(styles, saved)
	for k, v := range styles {
		if v != 0 {
			t.Errorf("style %v left at %d after pop", k, v)
		}
	}
}
