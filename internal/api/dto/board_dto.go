package dto

// CommandRequest carries one line of operator text.
type CommandRequest struct {
	Text string `json:"text"`
}

// DepartmentPatchRequest relabels a department; omitted fields are unchanged.
type DepartmentPatchRequest struct {
	DisplayName *string `json:"displayName"`
	SubLabel    *string `json:"subDept"`
	IsParentOrg *bool   `json:"isParentOrg"`
}

// ScenarioPatchRequest renames a scenario or edits its description.
type ScenarioPatchRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// PhotoPositionRequest sets the vertical crop offset (0..100).
type PhotoPositionRequest struct {
	PhotoPosY *int `json:"photoPosY"`
}

// PhotoResponse describes a stored photo.
type PhotoResponse struct {
	EmployeeID string `json:"employeeId"`
	Handle     string `json:"handle"`
}
