package flow

import "fmt"

// Step is a stage of the order wizard. The order of the constants is the
// order the customer walks through.
type Step uint8

const (
	StepIntro Step = iota
	StepAddress
	StepDinner
	StepStyle
	StepCustomize
	StepCheckout
)

func supportStep() [6]string {
	return [6]string{
		"intro",
		"address",
		"dinner",
		"style",
		"customize",
		"checkout",
	}
}

func ParseStep(val string) (Step, error) {
	steps := supportStep()
	for i := range steps {
		if val == steps[i] {
			return Step(i), nil
		}
	}

	return StepIntro, fmt.Errorf("unknown step [%s]", val)
}

func (s Step) Valid() bool { return int(s) < len(supportStep()) }

func (s Step) String() string {
	if !s.Valid() {
		return fmt.Sprintf("step(%d)", uint8(s))
	}

	return supportStep()[s]
}

func (s Step) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("marshal %s", s)
	}

	return []byte(s.String()), nil
}

func (s *Step) UnmarshalText(text []byte) error {
	step, err := ParseStep(string(text))
	if err != nil {
		return err
	}

	*s = step

	return nil
}
