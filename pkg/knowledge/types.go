package knowledge

// Dataset JSON keys follow the scraped source files, including the
// historical "adress" spelling. Do not "fix" them; the files on disk use
// these keys.

// Address is a street address as it appears in the office dataset.
type Address struct {
	Street string `json:"street"`
	Zip    string `json:"zip"`
	City   string `json:"city"`
}

// ContactInfo holds the public contact channels of an office.
type ContactInfo struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// PostAddress is the postal address of an office.
type PostAddress struct {
	CompanyName string `json:"company-name"`
	Street      string `json:"street"`
	Zip         string `json:"zip"`
	City        string `json:"city"`
}

// Office is one office location. Immutable after load; identity is the
// position in the loaded table.
type Office struct {
	VisitAddress Address     `json:"visit-adress" validate:"required"`
	ContactInfo  ContactInfo `json:"contact-info"`
	PostAddress  PostAddress `json:"post-adress"`
}

// Article is one scraped article. Tags and CompanyField drive relevance
// ranking; the remaining fields are display-only.
type Article struct {
	Title        string   `json:"title" validate:"required"`
	Ingress      string   `json:"ingress"`
	URL          string   `json:"url"`
	Tags         []string `json:"tags"`
	CompanyField string   `json:"company-field"`
}

// Employee is one company employee. Only the total count is consumed.
type Employee struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SkillDemand pairs a skill name with the number of people wanted for it.
type SkillDemand struct {
	Skill  string `json:"Skill" validate:"required"`
	Amount int    `json:"Amount"`
}
