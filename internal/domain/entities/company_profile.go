package entities

// CompanyProfile is the single business identity record ("empresa_config") used to brand estimates.
//
// There is exactly one instance; it has no id and is only ever overwritten.
type CompanyProfile struct {
	// Logo holds a data URL (base64) or a plain image URL.
	Logo       string `json:"logo"`
	Name       string `json:"nome"`
	Email      string `json:"email"`
	TaxID      string `json:"cnpjCpf"`
	Phone1     string `json:"telefone1"`
	Phone2     string `json:"telefone2"`
	Address    string `json:"endereco"`
	Activities string `json:"atividades"`
}

// DefaultCompanyProfile is returned when nothing (or nothing readable) has been saved yet.
func DefaultCompanyProfile() CompanyProfile {
	return CompanyProfile{
		Name:    "Minha Empresa LTDA.",
		TaxID:   "10.200.300/0001-00",
		Address: "Rua exemplo, 123",
	}
}
