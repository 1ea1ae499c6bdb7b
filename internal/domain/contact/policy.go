package contact

import "fmt"

// EmailScope decides where a contact email has to be unique.
type EmailScope string

const (
	EmailScopeGlobal EmailScope = "global"
	EmailScopeOwner  EmailScope = "owner"
)

func ParseEmailScope(s string) (EmailScope, error) {
	switch EmailScope(s) {
	case "", EmailScopeGlobal:
		return EmailScopeGlobal, nil
	case EmailScopeOwner:
		return EmailScopeOwner, nil
	}

	return "", fmt.Errorf("unknown email scope %q", s)
}
