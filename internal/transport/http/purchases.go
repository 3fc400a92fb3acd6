package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stagepass/stagepass/internal/app"
	"github.com/stagepass/stagepass/internal/domain"
)

// PurchaseService is the minimal interface needed by the purchase endpoints.
type PurchaseService interface {
	Purchase(ctx context.Context, in app.PurchaseInput) (app.PurchaseResult, error)
	GetPurchase(ctx context.Context, ticketID string) (*domain.TicketPurchase, error)
}

type createPurchaseRequest struct {
	PurchaserID   string `json:"purchaser_id" validate:"required"`
	PurchaseToken string `json:"purchase_token" validate:"required"`
	PriceCents    int64  `json:"price_cents" validate:"gte=0"`
}

type purchaseResponse struct {
	PurchaserID   string `json:"purchaser_id"`
	PurchaseToken string `json:"purchase_token"`
	PriceCents    int64  `json:"price_cents"`
}

// HandleCreatePurchase returns an HTTP handler for buying a ticket. Repeating
// the purchase as the same purchaser returns 200 with the originally stored
// token and price.
func HandleCreatePurchase(svc PurchaseService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPurchaseRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidArgument, err.Error())
			return
		}

		res, err := svc.Purchase(r.Context(), app.PurchaseInput{
			TicketID:      chi.URLParam(r, "ticketID"),
			PurchaserID:   req.PurchaserID,
			PurchaseToken: req.PurchaseToken,
			PriceCents:    req.PriceCents,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		status := http.StatusOK
		if res.Created {
			status = http.StatusCreated
		}
		writeJSON(w, status, purchaseResponse{
			PurchaserID:   res.Purchase.PurchaserID,
			PurchaseToken: res.Purchase.PurchaseToken,
			PriceCents:    res.Purchase.PriceCents,
		})
	}
}

// HandleGetPurchase returns an HTTP handler for fetching a ticket's sale.
func HandleGetPurchase(svc PurchaseService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetPurchase(r.Context(), chi.URLParam(r, "ticketID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if p == nil {
			writeError(w, http.StatusNotFound, codePurchaseNotFound, "purchase not found")
			return
		}
		writeJSON(w, http.StatusOK, purchaseResponse{
			PurchaserID:   p.PurchaserID,
			PurchaseToken: p.PurchaseToken,
			PriceCents:    p.PriceCents,
		})
	}
}
