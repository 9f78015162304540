package domain

// EnforceRequest is the authorization question asked by the RBAC
// middleware: may this employee of this company perform action on resource.
type EnforceRequest struct {
	EmployeeID string
	CompanyID  string
	Resource   string
	Action     string
}
