package email

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/fieldops-id/fieldops-backend-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEmailService(t *testing.T, cfg config.SMTPConfig, send sendFunc) *emailServiceImpl {
	t.Helper()
	svc, err := NewEmailService(cfg)
	require.NoError(t, err)
	impl := svc.(*emailServiceImpl)
	impl.send = send
	impl.backoff = time.Millisecond
	return impl
}

func sampleOrder() OrderPlacedData {
	return OrderPlacedData{
		OrderID:    "order-1",
		OutletName: "Toko <Maju>",
		SalesName:  "Budi",
		PlacedAt:   "02 Mar 2026 08:00",
		Items: []OrderPlacedItem{
			{ProductName: "Keripik", Quantity: 2, UnitPrice: 5000, Subtotal: 10000},
		},
		TotalAmount: 10000,
	}
}

func TestSendOrderPlaced_SkipsWithoutHost(t *testing.T) {
	called := false
	svc := newTestEmailService(t, config.SMTPConfig{}, func(string, smtp.Auth, string, []string, []byte) error {
		called = true
		return nil
	})

	err := svc.SendOrderPlaced(context.Background(), "owner@example.com", sampleOrder())

	assert.NoError(t, err)
	assert.False(t, called)
}

func TestSendOrderPlaced_RendersMessage(t *testing.T) {
	var gotAddr string
	var gotTo []string
	var gotMsg string
	svc := newTestEmailService(t, config.SMTPConfig{Host: "smtp.local", Port: 2525, From: "no-reply@fieldops.local", FromName: "FieldOps"},
		func(addr string, _ smtp.Auth, _ string, to []string, msg []byte) error {
			gotAddr, gotTo, gotMsg = addr, to, string(msg)
			return nil
		})

	err := svc.SendOrderPlaced(context.Background(), "owner@example.com", sampleOrder())

	require.NoError(t, err)
	assert.Equal(t, "smtp.local:2525", gotAddr)
	assert.Equal(t, []string{"owner@example.com"}, gotTo)
	assert.True(t, strings.HasPrefix(gotMsg, "From: FieldOps <no-reply@fieldops.local>\r\n"))
	assert.Contains(t, gotMsg, "Subject: Pesanan Baru untuk Toko <Maju>\r\n")
	assert.Contains(t, gotMsg, "Toko &lt;Maju&gt;")
	assert.Contains(t, gotMsg, "10000.00")
}

func TestSendOrderPlaced_RetriesThenFails(t *testing.T) {
	attempts := 0
	boom := errors.New("connection refused")
	svc := newTestEmailService(t, config.SMTPConfig{Host: "smtp.local", Port: 25}, func(string, smtp.Auth, string, []string, []byte) error {
		attempts++
		return boom
	})

	err := svc.SendOrderPlaced(context.Background(), "owner@example.com", sampleOrder())

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, maxRetries, attempts)
}

func TestSendOrderPlaced_RecoversOnRetry(t *testing.T) {
	attempts := 0
	svc := newTestEmailService(t, config.SMTPConfig{Host: "smtp.local", Port: 25}, func(string, smtp.Auth, string, []string, []byte) error {
		attempts++
		if attempts == 1 {
			return errors.New("temporary failure")
		}
		return nil
	})

	err := svc.SendOrderPlaced(context.Background(), "owner@example.com", sampleOrder())

	assert.NoError(t, err)
	assert.Equal(t, 2, attempts)
}
