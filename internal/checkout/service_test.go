package checkout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yarotec/storefront/internal/cart"
	"github.com/yarotec/storefront/internal/catalog"
	"github.com/yarotec/storefront/pkg/enums"
	pkgerrors "github.com/yarotec/storefront/pkg/errors"
	"github.com/yarotec/storefront/pkg/kv"
	"github.com/yarotec/storefront/pkg/money"
)

type stubRelay struct {
	result Result
	sent   []Message
}

func (s *stubRelay) Send(_ context.Context, m Message) Result {
	s.sent = append(s.sent, m)
	return s.result
}

func newCart(t *testing.T) *cart.Store {
	t.Helper()
	store, err := cart.NewStore(context.Background(), cart.StoreParams{Key: "yarotec_cart_v1:checkout", KV: kv.NewMemoryStore()})
	require.NoError(t, err)
	return store
}

func validOrder() OrderForm {
	return OrderForm{
		Name:          " Ana Pérez ",
		Email:         "ana@example.com",
		Phone:         "3001234567",
		City:          "Bogotá",
		Address:       "Cra 7 # 10-20",
		PaymentMethod: "transferencia",
	}
}

func TestSubmitOrderClearsCartOnSuccess(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := newCart(t)
	require.NoError(t, c.Add(ctx, catalog.Product{ID: "1", Name: "Cable", Price: 1000}, 3))

	relay := &stubRelay{result: Result{Success: true}}
	svc, err := NewService(relay, nil)
	require.NoError(t, err)

	res, err := svc.SubmitOrder(ctx, c, validOrder())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Empty(t, c.Lines())

	require.Len(t, relay.sent, 1)
	msg := relay.sent[0]
	f := money.Default()
	assert.Equal(t, enums.MessageKindOrder, msg.Kind)
	assert.Equal(t, "Ana Pérez", msg.ClientName)
	assert.Equal(t, "• Cable - "+f.Format(1000)+" x 3 = "+f.Format(3000), msg.Items)
	assert.Equal(t, f.Format(3000), msg.Total)
}

// addingRelay adds a product to the shopper's cart while the order is in flight.
type addingRelay struct {
	during func()
}

func (r *addingRelay) Send(context.Context, Message) Result {
	r.during()
	return Result{Success: true}
}

func TestSubmitOrderKeepsLinesAddedDuringRelay(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage := kv.NewMemoryStore()
	registry := cart.NewRegistry(cart.RegistryParams{KV: storage})
	checkoutCart, err := registry.Get(ctx, "shopper-1")
	require.NoError(t, err)
	require.NoError(t, checkoutCart.Add(ctx, catalog.Product{ID: "1", Name: "Cable", Price: 1000}, 1))

	relay := &addingRelay{during: func() {
		other, err := registry.Get(ctx, "shopper-1")
		require.NoError(t, err)
		require.NoError(t, other.Add(ctx, catalog.Product{ID: "2", Name: "Router", Price: 5000}, 1))
		require.NoError(t, other.Add(ctx, catalog.Product{ID: "1", Name: "Cable", Price: 1000}, 1))
	}}
	svc, err := NewService(relay, nil)
	require.NoError(t, err)

	res, err := svc.SubmitOrder(ctx, checkoutCart, validOrder())
	require.NoError(t, err)
	assert.True(t, res.Success)

	after, err := registry.Get(ctx, "shopper-1")
	require.NoError(t, err)
	assert.Equal(t, []cart.Line{
		{ProductID: "1", Name: "Cable", Price: 1000, Quantity: 1},
		{ProductID: "2", Name: "Router", Price: 5000, Quantity: 1},
	}, after.Lines())
}

func TestSubmitOrderKeepsCartOnFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := newCart(t)
	require.NoError(t, c.Add(ctx, catalog.Product{ID: "1", Name: "Cable", Price: 1000}, 1))

	relay := &stubRelay{result: Result{Success: false, Error: FailureMessage}}
	svc, err := NewService(relay, nil)
	require.NoError(t, err)

	res, err := svc.SubmitOrder(ctx, c, validOrder())
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, FailureMessage, res.Error)
	assert.Len(t, c.Lines(), 1)
}

func TestSubmitOrderRejectsEmptyCart(t *testing.T) {
	t.Parallel()

	relay := &stubRelay{result: Result{Success: true}}
	svc, err := NewService(relay, nil)
	require.NoError(t, err)

	_, err = svc.SubmitOrder(context.Background(), newCart(t), validOrder())
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, relay.sent)
}

func TestSubmitOrderValidatesForm(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := newCart(t)
	require.NoError(t, c.Add(ctx, catalog.Product{ID: "1", Name: "Cable", Price: 1000}, 1))

	svc, err := NewService(&stubRelay{}, nil)
	require.NoError(t, err)

	form := validOrder()
	form.Email = "not-an-email"
	form.Phone = "  "
	_, err = svc.SubmitOrder(ctx, c, form)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, map[string]string{"Email": "email", "Phone": "required"}, typed.Details())
}

func TestSubmitContactAndServiceRequest(t *testing.T) {
	t.Parallel()

	relay := &stubRelay{result: Result{Success: true}}
	svc, err := NewService(relay, nil)
	require.NoError(t, err)

	res, err := svc.SubmitContact(context.Background(), ContactForm{Name: "Ana", Email: "ana@example.com", Message: "Hola"})
	require.NoError(t, err)
	assert.True(t, res.Success)

	res, err = svc.SubmitServiceRequest(context.Background(), ServiceForm{
		Name: "Luis", Phone: "300", Service: "Instalación de cámaras", Description: "Dos cámaras",
	})
	require.NoError(t, err)
	assert.True(t, res.Success)

	require.Len(t, relay.sent, 2)
	assert.Equal(t, enums.MessageKindContact, relay.sent[0].Kind)
	assert.Equal(t, "Hola", relay.sent[0].Body)
	assert.Equal(t, enums.MessageKindServiceRequest, relay.sent[1].Kind)
	assert.Equal(t, "Instalación de cámaras", relay.sent[1].Service)

	_, err = svc.SubmitContact(context.Background(), ContactForm{Name: "Ana"})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestFormatItemsEmpty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, NoItemsText, FormatItems(nil, money.FormatCurrency))
}

func TestNewServiceRequiresRelay(t *testing.T) {
	t.Parallel()

	_, err := NewService(nil, nil)
	assert.Error(t, err)
}
