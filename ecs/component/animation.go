package component

import "sort"

const (
	AnimWalk   = "Walk"
	AnimAttack = "Attack"
)

// Animator holds boolean animation parameters. Rendering reads them; combat
// state hooks write them.
type Animator struct {
	Bools map[string]bool
}

func NewAnimator() *Animator {
	return &Animator{Bools: map[string]bool{}}
}

func (a *Animator) SetBool(name string, value bool) {
	if a == nil || name == "" {
		return
	}
	if a.Bools == nil {
		a.Bools = map[string]bool{}
	}
	a.Bools[name] = value
}

func (a *Animator) Bool(name string) bool {
	if a == nil {
		return false
	}
	return a.Bools[name]
}

// Active returns the names of parameters currently set, sorted.
func (a *Animator) Active() []string {
	if a == nil {
		return nil
	}
	out := make([]string, 0, len(a.Bools))
	for k, v := range a.Bools {
		if v {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

var AnimatorComponent = NewComponent[Animator]()
