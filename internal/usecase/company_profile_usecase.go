package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"orcafacil/internal/domain/entities"
	"orcafacil/internal/infrastructure/logging"
	"orcafacil/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
	"github.com/ttacon/libphonenumber"
)

var (
	ErrCompanyNameRequired  = errors.New("company name is required")
	ErrCompanyEmailRequired = errors.New("company email is required")
	ErrCompanyEmailInvalid  = errors.New("company email is invalid")
	ErrCompanyLogoInvalid   = errors.New("company logo is invalid")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ICompanyProfileUseCase reads and saves the company branding shown on every estimate.
type ICompanyProfileUseCase interface {
	Get(ctx context.Context) entities.CompanyProfile
	Save(ctx context.Context, p entities.CompanyProfile) (entities.CompanyProfile, error)
}

type CompanyProfileUseCase struct {
	repo        interfaces.ICompanyProfileRepository
	logo        interfaces.ILogoProcessor
	phoneRegion string
	logger      *logrus.Logger
}

var _ ICompanyProfileUseCase = (*CompanyProfileUseCase)(nil)

// NewCompanyProfileUseCase wires the use case. logo may be nil, in which case logos are stored as sent.
func NewCompanyProfileUseCase(repo interfaces.ICompanyProfileRepository, logo interfaces.ILogoProcessor, phoneRegion string, logger *logrus.Logger) *CompanyProfileUseCase {
	if strings.TrimSpace(phoneRegion) == "" {
		phoneRegion = "BR"
	}
	return &CompanyProfileUseCase{
		repo:        repo,
		logo:        logo,
		phoneRegion: strings.ToUpper(strings.TrimSpace(phoneRegion)),
		logger:      logging.OrDiscard(logger),
	}
}

func (u *CompanyProfileUseCase) Get(ctx context.Context) entities.CompanyProfile {
	return u.repo.Get(ctx)
}

// Save validates the profile and overwrites the stored one.
func (u *CompanyProfileUseCase) Save(ctx context.Context, p entities.CompanyProfile) (entities.CompanyProfile, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)

	if p.Name == "" {
		return entities.CompanyProfile{}, ErrCompanyNameRequired
	}
	if p.Email == "" {
		return entities.CompanyProfile{}, ErrCompanyEmailRequired
	}
	if !emailPattern.MatchString(p.Email) {
		return entities.CompanyProfile{}, ErrCompanyEmailInvalid
	}
	u.checkPhone("telefone1", p.Phone1)
	u.checkPhone("telefone2", p.Phone2)

	if u.logo != nil && strings.TrimSpace(p.Logo) != "" {
		logo, err := u.logo.Normalize(p.Logo)
		if err != nil {
			u.logger.WithError(err).Warn("[company][usecase] logo rejected")
			return entities.CompanyProfile{}, fmt.Errorf("%w: %v", ErrCompanyLogoInvalid, err)
		}
		p.Logo = logo
	}

	if err := u.repo.Save(ctx, p); err != nil {
		u.logger.WithError(err).Error("[company][usecase] save failed")
		return entities.CompanyProfile{}, fmt.Errorf("save company profile: %w", err)
	}
	u.logger.WithField("nome", p.Name).Info("[company][usecase] saved")
	return p, nil
}

// checkPhone only warns: phones are free text and partially typed masks are saved as entered.
func (u *CompanyProfileUseCase) checkPhone(field, phone string) {
	if strings.TrimSpace(phone) == "" {
		return
	}
	num, err := libphonenumber.Parse(phone, u.phoneRegion)
	if err == nil && libphonenumber.IsValidNumber(num) {
		return
	}
	entry := u.logger.WithFields(logrus.Fields{"campo": field, "telefone": phone, "region": u.phoneRegion})
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Warn("[company][usecase] phone does not look valid, saving as entered")
}
