package engine

import (
	"fmt"
	"strings"
)

type Stat string

const (
	StatStamina        Stat = "stamina"
	StatSkills         Stat = "skills"
	StatIntelligence   Stat = "intelligence"
	StatPower          Stat = "power"
	StatTimeManagement Stat = "timeManagement"
)

// AllStats lists every dimension in display order.
var AllStats = []Stat{StatStamina, StatSkills, StatIntelligence, StatPower, StatTimeManagement}

const (
	StatMin = 0
	StatMax = 100
)

func (s Stat) IsValid() bool {
	switch s {
	case StatStamina, StatSkills, StatIntelligence, StatPower, StatTimeManagement:
		return true
	default:
		return false
	}
}

// ParseStat accepts the canonical name plus a few short forms ("stam", "int", "time", ...).
func ParseStat(input string) (Stat, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "stamina", "stam", "sta":
		return StatStamina, nil
	case "skills", "skill":
		return StatSkills, nil
	case "intelligence", "int":
		return StatIntelligence, nil
	case "power", "pow":
		return StatPower, nil
	case "timemanagement", "time_management", "time-management", "time", "tm":
		return StatTimeManagement, nil
	default:
		return "", fmt.Errorf("unknown stat: %q", input)
	}
}

// StatVector holds one value per stat. Totals live in [StatMin, StatMax]; deltas are unbounded.
type StatVector struct {
	Stamina        int `json:"stamina" yaml:"stamina"`
	Skills         int `json:"skills" yaml:"skills"`
	Intelligence   int `json:"intelligence" yaml:"intelligence"`
	Power          int `json:"power" yaml:"power"`
	TimeManagement int `json:"timeManagement" yaml:"timeManagement"`
}

func Zero() StatVector {
	return StatVector{}
}

// Vec builds a vector in AllStats order.
func Vec(stamina, skills, intelligence, power, timeManagement int) StatVector {
	return StatVector{
		Stamina:        stamina,
		Skills:         skills,
		Intelligence:   intelligence,
		Power:          power,
		TimeManagement: timeManagement,
	}
}

func (v StatVector) Get(s Stat) int {
	switch s {
	case StatStamina:
		return v.Stamina
	case StatSkills:
		return v.Skills
	case StatIntelligence:
		return v.Intelligence
	case StatPower:
		return v.Power
	case StatTimeManagement:
		return v.TimeManagement
	default:
		return 0
	}
}

// With returns a copy of v with stat s set to value. Unknown stats leave v unchanged.
func (v StatVector) With(s Stat, value int) StatVector {
	switch s {
	case StatStamina:
		v.Stamina = value
	case StatSkills:
		v.Skills = value
	case StatIntelligence:
		v.Intelligence = value
	case StatPower:
		v.Power = value
	case StatTimeManagement:
		v.TimeManagement = value
	}
	return v
}

func (v StatVector) IsZero() bool {
	return v == StatVector{}
}

// Sum adds up all dimensions.
func (v StatVector) Sum() int {
	return v.Stamina + v.Skills + v.Intelligence + v.Power + v.TimeManagement
}

// Values returns the dimensions in AllStats order.
func (v StatVector) Values() []int {
	out := make([]int, 0, len(AllStats))
	for _, s := range AllStats {
		out = append(out, v.Get(s))
	}
	return out
}

func (v StatVector) String() string {
	parts := make([]string, 0, len(AllStats))
	for _, s := range AllStats {
		parts = append(parts, fmt.Sprintf("%s:%d", s, v.Get(s)))
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// Add returns the component-wise sum.
func Add(a, b StatVector) StatVector {
	return StatVector{
		Stamina:        a.Stamina + b.Stamina,
		Skills:         a.Skills + b.Skills,
		Intelligence:   a.Intelligence + b.Intelligence,
		Power:          a.Power + b.Power,
		TimeManagement: a.TimeManagement + b.TimeManagement,
	}
}

// Sub returns a - b.
func Sub(a, b StatVector) StatVector {
	return Add(a, Negate(b))
}

func Negate(v StatVector) StatVector {
	return StatVector{
		Stamina:        -v.Stamina,
		Skills:         -v.Skills,
		Intelligence:   -v.Intelligence,
		Power:          -v.Power,
		TimeManagement: -v.TimeManagement,
	}
}

// Clamp bounds each dimension to [StatMin, StatMax] independently.
func Clamp(v StatVector) StatVector {
	return StatVector{
		Stamina:        clampStat(v.Stamina),
		Skills:         clampStat(v.Skills),
		Intelligence:   clampStat(v.Intelligence),
		Power:          clampStat(v.Power),
		TimeManagement: clampStat(v.TimeManagement),
	}
}

func clampStat(n int) int {
	if n < StatMin {
		return StatMin
	}
	if n > StatMax {
		return StatMax
	}
	return n
}

// SumVectors adds up a list of vectors.
func SumVectors(vs ...StatVector) StatVector {
	total := Zero()
	for _, v := range vs {
		total = Add(total, v)
	}
	return total
}

// DefaultBaseline is the starting totals for a fresh store.
func DefaultBaseline() StatVector {
	return Vec(72, 64, 78, 60, 55)
}
