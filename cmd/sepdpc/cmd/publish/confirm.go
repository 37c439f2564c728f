package publish

import (
	"github.com/AlecAivazis/survey/v2"
)

// confirm asks a yes/no question, defaulting to no. Tests replace it.
var confirm = func(message string) (bool, error) {
	var ok bool
	if err := survey.AskOne(&survey.Confirm{Message: message, Default: false}, &ok); err != nil {
		return false, err
	}
	return ok, nil
}
