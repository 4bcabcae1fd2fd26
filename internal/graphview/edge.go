package graphview

import "fmt"

// Edge is a directed relation between two cell ids.
type Edge struct {
	Dir   Direction `json:"dir"`
	Src   string    `json:"src"`
	Dst   string    `json:"dst"`
	Label string    `json:"label,omitempty"`
}

// Key identifies the (direction, src, dst) triple used for de-duplication.
func (e Edge) Key() string {
	return fmt.Sprintf("%d|%s|%s", e.Dir, e.Src, e.Dst)
}

func (e Edge) SelfLoop() bool {
	return e.Src == e.Dst
}

func (e Edge) String() string {
	if e.Label != "" {
		return fmt.Sprintf("%s -%s[%s]-> %s", e.Src, e.Dir, e.Label, e.Dst)
	}
	return fmt.Sprintf("%s -%s-> %s", e.Src, e.Dir, e.Dst)
}
