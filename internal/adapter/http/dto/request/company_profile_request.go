package request

import "orcafacil/internal/domain/entities"

type CompanyProfileRequest struct {
	Logo       string `json:"logo"`
	Name       string `json:"nome"`
	Email      string `json:"email"`
	TaxID      string `json:"cnpjCpf"`
	Phone1     string `json:"telefone1"`
	Phone2     string `json:"telefone2"`
	Address    string `json:"endereco"`
	Activities string `json:"atividades"`
}

func (r CompanyProfileRequest) ToEntity() entities.CompanyProfile {
	return entities.CompanyProfile{
		Logo:       r.Logo,
		Name:       r.Name,
		Email:      r.Email,
		TaxID:      r.TaxID,
		Phone1:     r.Phone1,
		Phone2:     r.Phone2,
		Address:    r.Address,
		Activities: r.Activities,
	}
}
