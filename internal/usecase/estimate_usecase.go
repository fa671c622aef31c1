package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"orcafacil/internal/domain/entities"
	"orcafacil/internal/infrastructure/logging"
	"orcafacil/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrEstimateNotFound       = errors.New("estimate not found")
	ErrInvalidEstimateID      = errors.New("invalid estimate id")
	ErrEstimateTitleRequired  = errors.New("estimate title is required")
	ErrInvalidEstimateStatus  = errors.New("invalid estimate status")
	ErrInvalidDiscountKind    = errors.New("invalid discount kind")
	ErrInvalidDiscountValue   = errors.New("invalid discount value")
	ErrItemNotFound           = errors.New("estimate item not found")
	ErrInvalidItemValue       = errors.New("invalid item value")
	ErrInvalidPaymentMethod   = errors.New("invalid payment method")
	ErrEstimateExportDisabled = errors.New("estimate export not configured")
)

var paymentMethods = map[string]struct{}{
	entities.PaymentMethodPix:           {},
	entities.PaymentMethodCredito:       {},
	entities.PaymentMethodDebito:        {},
	entities.PaymentMethodDinheiro:      {},
	entities.PaymentMethodTransferencia: {},
	entities.PaymentMethodBoleto:        {},
	entities.PaymentMethodCheque:        {},
}

// ItemPatch carries the line item fields to change. Nil fields are left untouched.
type ItemPatch struct {
	Name      *string
	Kind      *string
	Quantity  *float64
	UnitPrice *float64
	Discount  *float64
}

// ExportFile is a rendered estimate list ready to be downloaded.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// IEstimateUseCase exposes the estimate (orçamento) operations of the form and list screens.
//
// Every edit goes through Save, so totals are recomputed and dataAtualizacao is refreshed.
type IEstimateUseCase interface {
	NewDraft(ctx context.Context) entities.Estimate
	Save(ctx context.Context, e entities.Estimate) (entities.Estimate, error)
	GetByID(ctx context.Context, id string) (entities.Estimate, error)
	List(ctx context.Context, search string) []entities.Estimate
	Delete(ctx context.Context, id string) error

	UpdateStatus(ctx context.Context, id string, status entities.EstimateStatus) (entities.Estimate, error)
	UpdateDiscount(ctx context.Context, id string, amount float64, kind entities.DiscountKind) (entities.Estimate, error)
	AddItem(ctx context.Context, id string) (entities.Estimate, error)
	UpdateItem(ctx context.Context, id, itemID string, patch ItemPatch) (entities.Estimate, error)
	RemoveItem(ctx context.Context, id, itemID string) (entities.Estimate, error)
	TogglePaymentMethod(ctx context.Context, id, tag string) (entities.Estimate, error)

	Export(ctx context.Context, search string) (ExportFile, error)
}

type EstimateUseCase struct {
	repo     interfaces.IEstimateRepository
	exporter interfaces.IEstimateExporter
	logger   *logrus.Logger

	now   func() time.Time
	newID func() string
}

var _ IEstimateUseCase = (*EstimateUseCase)(nil)

// NewEstimateUseCase wires the use case. exporter may be nil, which disables Export.
func NewEstimateUseCase(repo interfaces.IEstimateRepository, exporter interfaces.IEstimateExporter, logger *logrus.Logger) *EstimateUseCase {
	return &EstimateUseCase{
		repo:     repo,
		exporter: exporter,
		logger:   logging.OrDiscard(logger),
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

// NewDraft returns an unsaved blank estimate carrying the next display number.
func (u *EstimateUseCase) NewDraft(ctx context.Context) entities.Estimate {
	return entities.NewBlankEstimate(u.newID(), u.repo.NextNumber(ctx), u.now())
}

func (u *EstimateUseCase) Save(ctx context.Context, e entities.Estimate) (entities.Estimate, error) {
	if strings.TrimSpace(e.Title) == "" {
		return entities.Estimate{}, ErrEstimateTitleRequired
	}
	if e.Status == "" {
		e.Status = entities.EstimateStatusEmAberto
	}
	if !e.Status.IsValid() {
		return entities.Estimate{}, ErrInvalidEstimateStatus
	}
	if e.DiscountKind == "" {
		e.DiscountKind = entities.DiscountKindReais
	}
	if err := validateDiscount(e.Discount, e.DiscountKind); err != nil {
		return entities.Estimate{}, err
	}
	for i := range e.Items {
		it := &e.Items[i]
		if it.Quantity < 0 || it.UnitPrice < 0 || it.Discount < 0 {
			return entities.Estimate{}, ErrInvalidItemValue
		}
		if strings.TrimSpace(it.ID) == "" {
			it.ID = u.newID()
		}
	}

	e.ID = strings.TrimSpace(e.ID)
	if e.ID == "" {
		e.ID = u.newID()
	}
	if strings.TrimSpace(e.Number) == "" {
		e.Number = u.repo.NextNumber(ctx)
	}
	if e.Images == nil {
		e.Images = []string{}
	}
	if e.Items == nil {
		e.Items = []entities.LineItem{}
	}
	if e.PaymentMethods == nil {
		e.PaymentMethods = []string{}
	}

	now := u.now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
	e.Recalculate()

	if err := u.repo.Upsert(ctx, e); err != nil {
		u.logger.WithFields(logrus.Fields{"estimate_id": e.ID, "numero": e.Number}).WithError(err).Error("[estimate][usecase] save failed")
		return entities.Estimate{}, fmt.Errorf("save estimate: %w", err)
	}
	u.logger.WithFields(logrus.Fields{"estimate_id": e.ID, "numero": e.Number, "total": e.Total}).Info("[estimate][usecase] saved")
	return e, nil
}

func (u *EstimateUseCase) GetByID(ctx context.Context, id string) (entities.Estimate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Estimate{}, ErrInvalidEstimateID
	}

	e, ok := u.repo.GetByID(ctx, id)
	if !ok {
		return entities.Estimate{}, ErrEstimateNotFound
	}
	return e, nil
}

// List returns the stored estimates whose number, title or client name contain search,
// ignoring case. An empty search returns everything.
func (u *EstimateUseCase) List(ctx context.Context, search string) []entities.Estimate {
	all := u.repo.List(ctx)
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return all
	}

	out := make([]entities.Estimate, 0, len(all))
	for _, e := range all {
		if strings.Contains(strings.ToLower(e.Number), term) ||
			strings.Contains(strings.ToLower(e.Title), term) ||
			strings.Contains(strings.ToLower(e.Client.Name), term) {
			out = append(out, e)
		}
	}
	return out
}

// Delete is idempotent: removing an unknown id succeeds.
func (u *EstimateUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidEstimateID
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete estimate: %w", err)
	}
	u.logger.WithField("estimate_id", id).Info("[estimate][usecase] deleted")
	return nil
}

func (u *EstimateUseCase) UpdateStatus(ctx context.Context, id string, status entities.EstimateStatus) (entities.Estimate, error) {
	if !status.IsValid() {
		return entities.Estimate{}, ErrInvalidEstimateStatus
	}
	return u.edit(ctx, id, func(e *entities.Estimate) error {
		e.SetStatus(status)
		return nil
	})
}

func (u *EstimateUseCase) UpdateDiscount(ctx context.Context, id string, amount float64, kind entities.DiscountKind) (entities.Estimate, error) {
	if err := validateDiscount(amount, kind); err != nil {
		return entities.Estimate{}, err
	}
	return u.edit(ctx, id, func(e *entities.Estimate) error {
		e.SetDiscount(amount, kind)
		return nil
	})
}

// AddItem appends a blank line item; it is the last element of the returned items.
func (u *EstimateUseCase) AddItem(ctx context.Context, id string) (entities.Estimate, error) {
	return u.edit(ctx, id, func(e *entities.Estimate) error {
		e.AddItem(u.newID())
		return nil
	})
}

func (u *EstimateUseCase) UpdateItem(ctx context.Context, id, itemID string, patch ItemPatch) (entities.Estimate, error) {
	for _, v := range []*float64{patch.Quantity, patch.UnitPrice, patch.Discount} {
		if v != nil && *v < 0 {
			return entities.Estimate{}, ErrInvalidItemValue
		}
	}
	return u.edit(ctx, id, func(e *entities.Estimate) error {
		it := e.Item(strings.TrimSpace(itemID))
		if it == nil {
			return ErrItemNotFound
		}
		if patch.Name != nil {
			it.SetName(*patch.Name)
		}
		if patch.Kind != nil {
			it.SetKind(*patch.Kind)
		}
		if patch.Quantity != nil {
			it.SetQuantity(*patch.Quantity)
		}
		if patch.UnitPrice != nil {
			it.SetUnitPrice(*patch.UnitPrice)
		}
		if patch.Discount != nil {
			it.SetDiscount(*patch.Discount)
		}
		return nil
	})
}

func (u *EstimateUseCase) RemoveItem(ctx context.Context, id, itemID string) (entities.Estimate, error) {
	return u.edit(ctx, id, func(e *entities.Estimate) error {
		if !e.RemoveItem(strings.TrimSpace(itemID)) {
			return ErrItemNotFound
		}
		return nil
	})
}

func (u *EstimateUseCase) TogglePaymentMethod(ctx context.Context, id, tag string) (entities.Estimate, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if _, ok := paymentMethods[tag]; !ok {
		return entities.Estimate{}, ErrInvalidPaymentMethod
	}
	return u.edit(ctx, id, func(e *entities.Estimate) error {
		e.TogglePaymentMethod(tag)
		u.logger.WithFields(logrus.Fields{"id": e.ID, "metodo": tag, "selected": e.HasPaymentMethod(tag)}).
			Debug("[estimate][usecase] payment method toggled")
		return nil
	})
}

func (u *EstimateUseCase) Export(ctx context.Context, search string) (ExportFile, error) {
	if u.exporter == nil {
		return ExportFile{}, ErrEstimateExportDisabled
	}
	estimates := u.List(ctx, search)
	data, err := u.exporter.Export(estimates)
	if err != nil {
		u.logger.WithError(err).Error("[estimate][usecase] export failed")
		return ExportFile{}, fmt.Errorf("export estimates: %w", err)
	}
	return ExportFile{
		Name:        fmt.Sprintf("orcamentos-%s.%s", u.now().Format("20060102"), u.exporter.FileExtension()),
		ContentType: u.exporter.ContentType(),
		Data:        data,
	}, nil
}

// edit loads the estimate, applies fn and saves it.
func (u *EstimateUseCase) edit(ctx context.Context, id string, fn func(e *entities.Estimate) error) (entities.Estimate, error) {
	e, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if err := fn(&e); err != nil {
		return entities.Estimate{}, err
	}
	return u.Save(ctx, e)
}

func validateDiscount(amount float64, kind entities.DiscountKind) error {
	if kind != entities.DiscountKindReais && kind != entities.DiscountKindPercent {
		return ErrInvalidDiscountKind
	}
	if amount < 0 {
		return ErrInvalidDiscountValue
	}
	return nil
}
