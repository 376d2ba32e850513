package types

type (
	EventRequest struct {
		Name        string `json:"name"        validate:"required,max=191"`
		Description string `json:"description" validate:"max=4096"`
		// UNIX millisecond timestamps; end must not precede start
		Start    UnixMilli `json:"start"     validate:"required"`
		End      UnixMilli `json:"end"       validate:"required,gtefield=Start"`
		InPerson bool      `json:"in_person"`
		// A street address when in person, otherwise a URL
		Location string `json:"location" validate:"required,max=2048"`
	}

	EventDetail struct {
		ID          string    `json:"id"          validate:"required,uuid_rfc4122" format:"uuid"`
		ClubID      string    `json:"club_id"     validate:"required,uuid_rfc4122" format:"uuid"`
		Name        string    `json:"name"        validate:"required"`
		Description string    `json:"description"`
		Start       UnixMilli `json:"start"       validate:"required"`
		End         UnixMilli `json:"end"         validate:"required"`
		InPerson    bool      `json:"in_person"`
		Location    string    `json:"location"`
	}
)
