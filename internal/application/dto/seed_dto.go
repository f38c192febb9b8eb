package dto

// ProductionConfirmation valor exigido en confirmInitialization.
const ProductionConfirmation = "INITIALIZE_PRODUCTION_DATA_CONFIRMED"

// InitProductionRequest cuerpo de POST /admin/init-production-data.
type InitProductionRequest struct {
	ConfirmInitialization string `json:"confirmInitialization"`
}

// Credential cuenta sembrada, devuelta para el primer acceso.
type Credential struct {
	Role     string `json:"role"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SeedResult resultado de una siembra.
type SeedResult struct {
	Message             string       `json:"message"`
	UsersCreated        int          `json:"usersCreated"`
	UsersUpdated        int          `json:"usersUpdated"`
	LaboratoriesCreated int          `json:"laboratoriesCreated"`
	OrdersCreated       int          `json:"ordersCreated"`
	Initialized         bool         `json:"initialized"`
	Credentials         []Credential `json:"credentials"`
}
