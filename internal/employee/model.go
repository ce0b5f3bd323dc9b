package employee

import "github.com/mcruz-dev/takeout-backoffice/internal/operator"

const (
	StatusDisabled = 0
	StatusEnabled  = 1
)

// DefaultPassword is assigned to newly created accounts; operators are
// expected to change it on first login.
const DefaultPassword = "123456"

type Employee struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	// bcrypt hash; masked before leaving the service
	Password string `json:"password,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Status   int    `json:"status"`
	operator.Audit
}

// SaveRequest is the create/update payload for an employee account.
// swagger:model SaveEmployeeRequest
type SaveRequest struct {
	Username string `json:"username" example:"zhangsan"`
	Name     string `json:"name"     example:"Zhang San"`
	Phone    string `json:"phone"    example:"13800000000"`
}

// LoginRequest is the admin login payload.
// swagger:model LoginRequest
type LoginRequest struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password" example:"123456"`
}

// LoginResponse carries the issued token together with the account basics.
// swagger:model LoginResponse
type LoginResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Token    string `json:"token"`
}
