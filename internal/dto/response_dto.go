package dto

import (
	"github.com/atemmel/sims-chatbot/pkg/knowledge"
)

// AddressDTO is the camelCase display form of a street address.
type AddressDTO struct {
	Street string `json:"street"`
	Zip    string `json:"zip"`
	City   string `json:"city"`
}

// ContactInfoDTO is the display form of office contact channels.
type ContactInfoDTO struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// PostAddressDTO is the display form of an office postal address.
type PostAddressDTO struct {
	CompanyName string `json:"companyName"`
	Street      string `json:"street"`
	Zip         string `json:"zip"`
	City        string `json:"city"`
}

// OfficeDTO reshapes an office into the form the frontend renders.
type OfficeDTO struct {
	VisitAddress AddressDTO     `json:"visitAddress"`
	ContactInfo  ContactInfoDTO `json:"contactInfo"`
	PostAddress  PostAddressDTO `json:"postAddress"`
}

// ArticleDTO is the display form of a ranked article.
type ArticleDTO struct {
	Title        string   `json:"title"`
	Ingress      string   `json:"ingress,omitempty"`
	URL          string   `json:"url,omitempty"`
	Tags         []string `json:"tags"`
	CompanyField string   `json:"company-field"`
}

// Fragment is one unit of an enriched response. Text is always present;
// offices and articles are attached only on the paths that produce them.
type Fragment struct {
	Text     string       `json:"text"`
	Offices  []OfficeDTO  `json:"offices,omitempty"`
	Articles []ArticleDTO `json:"articles,omitempty"`
}

// ChatResponse is the payload delivered to a client for one exchange.
type ChatResponse struct {
	Response []Fragment `json:"response"`
}

// NewOfficeDTO maps a knowledge store office into display form.
func NewOfficeDTO(office knowledge.Office) OfficeDTO {
	return OfficeDTO{
		VisitAddress: AddressDTO{
			Street: office.VisitAddress.Street,
			Zip:    office.VisitAddress.Zip,
			City:   office.VisitAddress.City,
		},
		ContactInfo: ContactInfoDTO{
			Phone: office.ContactInfo.Phone,
			Email: office.ContactInfo.Email,
		},
		PostAddress: PostAddressDTO{
			CompanyName: office.PostAddress.CompanyName,
			Street:      office.PostAddress.Street,
			Zip:         office.PostAddress.Zip,
			City:        office.PostAddress.City,
		},
	}
}

// NewArticleDTO maps a knowledge store article into display form.
func NewArticleDTO(article knowledge.Article) ArticleDTO {
	return ArticleDTO{
		Title:        article.Title,
		Ingress:      article.Ingress,
		URL:          article.URL,
		Tags:         article.Tags,
		CompanyField: article.CompanyField,
	}
}
