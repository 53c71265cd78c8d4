package department

type DepartmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"dept_name"`
}

func NewDepartmentResponse(d Department) DepartmentResponse {
	return DepartmentResponse{ID: d.ID, Name: d.Name}
}
