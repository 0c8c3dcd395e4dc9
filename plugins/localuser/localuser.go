// Package localuser is the built-in "local_user" account type, mapping an
// account's identity string to a local user id. Two accounts duplicate each
// other when their identity strings match within the type.
package localuser

import (
	"fmt"

	"github.com/hiraeth-dev/entities/internal/domain"
	"github.com/hiraeth-dev/entities/internal/extension"
)

const (
	TypeTag = "local_user"
	Class   = "entities.plugins.localuser"
)

type LocalUser struct{}

func New() *LocalUser {
	return &LocalUser{}
}

func (p *LocalUser) BuildAccountSearchDuplicate(q extension.Query, account *domain.Account) {
	q.LimitToType(TypeTag)
	q.LimitToField("account", account.Account)
}

func (p *LocalUser) BuildAccountSearch(q extension.Query, needle string) {
	q.LimitToType(TypeTag)
	q.SearchInField("account", needle)
}

func (p *LocalUser) ConfirmAccountCreationStatus(account *domain.Account) error {
	if account.Account == "" {
		return fmt.Errorf("local_user account requires a user id")
	}
	return nil
}
