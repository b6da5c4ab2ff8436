package requests

type RegisterPatient struct {
	Name    string  `json:"name" validate:"required,min=2,max=100"`
	Phone   string  `json:"phone" validate:"required,phone_number"`
	Gender  *string `json:"gender" validate:"omitempty,oneof=male female other"`
	Age     *int    `json:"age" validate:"omitempty,gte=0,lte=130"`
	Address *string `json:"address" validate:"omitempty,max=255"`
}

type UpdatePatient struct {
	Name    *string `json:"name" validate:"omitempty,min=2,max=100"`
	Phone   *string `json:"phone" validate:"omitempty,phone_number"`
	Gender  *string `json:"gender" validate:"omitempty,oneof=male female other"`
	Age     *int    `json:"age" validate:"omitempty,gte=0,lte=130"`
	Address *string `json:"address" validate:"omitempty,max=255"`
}

type PatientFilter struct {
	Status     string `validate:"omitempty,oneof=active no_package discharged"`
	Pagination Pagination
}
