package enums

import "fmt"

// UseCase classifies what a subscription is used for.
type UseCase string

const (
	UseCaseWork     UseCase = "Work"
	UseCasePersonal UseCase = "Personal"
)

var validUseCases = []UseCase{
	UseCaseWork,
	UseCasePersonal,
}

// String implements fmt.Stringer.
func (u UseCase) String() string {
	return string(u)
}

// IsValid reports whether the value is a known UseCase.
func (u UseCase) IsValid() bool {
	for _, candidate := range validUseCases {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseUseCase converts raw input into a UseCase.
func ParseUseCase(value string) (UseCase, error) {
	for _, candidate := range validUseCases {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid use case %q", value)
}
