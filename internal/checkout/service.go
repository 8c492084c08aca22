package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yarotec/storefront/internal/cart"
	"github.com/yarotec/storefront/pkg/enums"
	pkgerrors "github.com/yarotec/storefront/pkg/errors"
	"github.com/yarotec/storefront/pkg/logger"
)

// ErrEmptyCart rejects an order with no lines.
var ErrEmptyCart = pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")

// OrderForm is the customer data captured at checkout.
type OrderForm struct {
	Name          string `json:"name" validate:"required,max=120"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone" validate:"required,max=40"`
	City          string `json:"city" validate:"required,max=80"`
	Address       string `json:"address" validate:"required,max=200"`
	Locality      string `json:"locality" validate:"max=80"`
	PaymentMethod string `json:"payment_method" validate:"required,max=60"`
	Note          string `json:"note" validate:"max=1000"`
}

type ContactForm struct {
	Name    string `json:"name" validate:"required,max=120"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"max=40"`
	Message string `json:"message" validate:"required,max=2000"`
}

type ServiceForm struct {
	Name        string `json:"name" validate:"required,max=120"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"required,max=40"`
	City        string `json:"city" validate:"max=80"`
	Address     string `json:"address" validate:"max=200"`
	Service     string `json:"service" validate:"required,max=120"`
	Description string `json:"description" validate:"required,max=2000"`
}

// OrderCart is the part of a cart.Store checkout reads and settles.
type OrderCart interface {
	Lines() []cart.Line
	FormatCurrency(amount int64) string
	RemoveOrdered(ctx context.Context, ordered []cart.Line) error
}

type Service struct {
	relay    Relay
	logg     *logger.Logger
	validate *validator.Validate
}

func NewService(relay Relay, logg *logger.Logger) (*Service, error) {
	if relay == nil {
		return nil, fmt.Errorf("relay required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Service{relay: relay, logg: logg, validate: validator.New()}, nil
}

// SubmitOrder relays the cart's lines and, only when the relay succeeded,
// removes exactly those lines. Units added while the relay was in flight stay
// in the cart.
func (s *Service) SubmitOrder(ctx context.Context, c OrderCart, form OrderForm) (Result, error) {
	if c == nil {
		return Result{}, ErrEmptyCart
	}
	form = trimOrder(form)
	if err := s.check(form); err != nil {
		return Result{}, err
	}
	lines := c.Lines()
	if len(lines) == 0 {
		return Result{}, ErrEmptyCart
	}

	res := s.relay.Send(ctx, Message{
		Kind:          enums.MessageKindOrder,
		ClientName:    form.Name,
		ClientEmail:   form.Email,
		Phone:         form.Phone,
		City:          form.City,
		Address:       form.Address,
		Locality:      form.Locality,
		PaymentMethod: form.PaymentMethod,
		Note:          form.Note,
		Items:         FormatItems(lines, c.FormatCurrency),
		Total:         c.FormatCurrency(linesTotal(lines)),
	})
	if !res.Success {
		return res, nil
	}

	if err := c.RemoveOrdered(ctx, lines); err != nil {
		// The order went out; report success and leave the stale cart.
		s.logg.Error(ctx, "remove ordered lines", err)
	}
	return res, nil
}

func linesTotal(lines []cart.Line) int64 {
	var total int64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}

func (s *Service) SubmitContact(ctx context.Context, form ContactForm) (Result, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	form.Phone = strings.TrimSpace(form.Phone)
	form.Message = strings.TrimSpace(form.Message)
	if err := s.check(form); err != nil {
		return Result{}, err
	}
	return s.relay.Send(ctx, Message{
		Kind:        enums.MessageKindContact,
		ClientName:  form.Name,
		ClientEmail: form.Email,
		Phone:       form.Phone,
		Body:        form.Message,
	}), nil
}

func (s *Service) SubmitServiceRequest(ctx context.Context, form ServiceForm) (Result, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	form.Phone = strings.TrimSpace(form.Phone)
	form.Service = strings.TrimSpace(form.Service)
	form.Description = strings.TrimSpace(form.Description)
	if err := s.check(form); err != nil {
		return Result{}, err
	}
	return s.relay.Send(ctx, Message{
		Kind:        enums.MessageKindServiceRequest,
		ClientName:  form.Name,
		ClientEmail: form.Email,
		Phone:       form.Phone,
		City:        strings.TrimSpace(form.City),
		Address:     strings.TrimSpace(form.Address),
		Service:     form.Service,
		Description: form.Description,
	}), nil
}

func (s *Service) check(form any) error {
	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}
	details := map[string]string{}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrs {
			details[fe.Field()] = fe.Tag()
		}
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form").WithDetails(details)
}

func trimOrder(f OrderForm) OrderForm {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.City = strings.TrimSpace(f.City)
	f.Address = strings.TrimSpace(f.Address)
	f.Locality = strings.TrimSpace(f.Locality)
	f.PaymentMethod = strings.TrimSpace(f.PaymentMethod)
	f.Note = strings.TrimSpace(f.Note)
	return f
}
