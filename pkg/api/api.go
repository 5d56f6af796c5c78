// Package api exposes the table order repository over HTTP.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	_ "restaurant/docs"
	"restaurant/pkg/logger"
	"restaurant/pkg/order"
	"restaurant/pkg/otel"
)

const maxBodyBytes = 1 << 20

// Handler serves the order endpoints.
type Handler struct {
	repo   order.Repository
	log    *logger.Logger
	tracer trace.Tracer
}

// New returns a Handler backed by repo. tracer may be nil, in which case
// spans go to the global provider.
func New(repo order.Repository, log *logger.Logger, tracer trace.Tracer) *Handler {
	return &Handler{repo: repo, log: log, tracer: tracer}
}

// Routes builds the router.
func (h *Handler) Routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestIDMiddleware, h.traceMiddleware, h.accessLogMiddleware)

	r.HandleFunc("/healthz", healthHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/orders").Subrouter()
	api.HandleFunc("/{table_id}", h.placeOrderHandler).Methods(http.MethodPost)
	api.HandleFunc("/{table_id}", h.tableOrdersHandler).Methods(http.MethodGet)
	api.HandleFunc("/{table_id}/items/{item_id}", h.getItemHandler).Methods(http.MethodGet)
	api.HandleFunc("/{table_id}/{item_id}", h.removeItemHandler).Methods(http.MethodDelete)

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	return r
}

// placeOrderRequest is the body of POST /orders/{table_id}.
type placeOrderRequest struct {
	Items []json.RawMessage `json:"items"`
}

// itemsResponse wraps a list of items.
type itemsResponse struct {
	Items []order.Item `json:"items"`
}

// healthHandler reports liveness.
// @Summary Health check
// @Produce json
// @Success 200
// @Router /healthz [get]
func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// placeOrderHandler adds items to a table's order.
// @Summary Place order
// @Accept json
// @Produce json
// @Param table_id path int true "Table ID"
// @Param order body placeOrderRequest true "Items to order"
// @Success 201 {object} itemsResponse
// @Failure 400
// @Router /orders/{table_id} [post]
func (h *Handler) placeOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "placeOrderHandler")
	defer span.End()

	table, err := order.ParseTableID(mux.Vars(r)["table_id"])
	if err != nil {
		h.writeError(ctx, w, r, err)
		return
	}
	span.SetAttributes(attribute.Int64("table_id", int64(table)))

	items, err := decodeItems(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.writeError(ctx, w, r, err)
		return
	}

	placed, err := h.repo.PlaceOrder(ctx, table, items)
	if err != nil {
		h.writeError(ctx, w, r, err)
		return
	}
	h.log.Debug(ctx, "order placed", "table_id", table, "items", len(placed))
	writeJSON(w, http.StatusCreated, itemsResponse{Items: placed})
}

// tableOrdersHandler lists the items ordered for a table.
// @Summary List table orders
// @Produce json
// @Param table_id path int true "Table ID"
// @Success 200 {object} itemsResponse
// @Failure 400
// @Router /orders/{table_id} [get]
func (h *Handler) tableOrdersHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "tableOrdersHandler")
	defer span.End()

	table, err := order.ParseTableID(mux.Vars(r)["table_id"])
	if err != nil {
		h.writeError(ctx, w, r, err)
		return
	}
	span.SetAttributes(attribute.Int64("table_id", int64(table)))

	items, err := h.repo.TableOrders(ctx, table)
	if err != nil {
		h.writeError(ctx, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itemsResponse{Items: items})
}

// getItemHandler retrieves one item of a table.
// @Summary Get item
// @Produce json
// @Param table_id path int true "Table ID"
// @Param item_id path int true "Item ID"
// @Success 200 {object} order.Item
// @Failure 400
// @Failure 404
// @Router /orders/{table_id}/items/{item_id} [get]
func (h *Handler) getItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getItemHandler")
	defer span.End()

	table, id, err := itemPath(r)
	if err != nil {
		h.writeError(ctx, w, r, err)
		return
	}
	span.SetAttributes(attribute.Int64("table_id", int64(table)), attribute.String("item_id", id.String()))

	it, err := h.repo.Item(ctx, table, id)
	if err != nil {
		h.writeError(ctx, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

// removeItemHandler removes one item from a table.
// @Summary Remove item
// @Param table_id path int true "Table ID"
// @Param item_id path int true "Item ID"
// @Success 204
// @Failure 400
// @Failure 404
// @Router /orders/{table_id}/{item_id} [delete]
func (h *Handler) removeItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "removeItemHandler")
	defer span.End()

	table, id, err := itemPath(r)
	if err != nil {
		h.writeError(ctx, w, r, err)
		return
	}
	span.SetAttributes(attribute.Int64("table_id", int64(table)), attribute.String("item_id", id.String()))

	if err := h.repo.RemoveItem(ctx, table, id); err != nil {
		h.writeError(ctx, w, r, err)
		return
	}
	h.log.Debug(ctx, "item removed", "table_id", table, "item_id", id)
	w.WriteHeader(http.StatusNoContent)
}

func itemPath(r *http.Request) (order.TableID, order.ItemID, error) {
	vars := mux.Vars(r)
	table, tErr := order.ParseTableID(vars["table_id"])
	id, iErr := order.ParseItemID(vars["item_id"])
	if err := errors.Join(tErr, iErr); err != nil {
		return 0, 0, err
	}
	return table, id, nil
}

// decodeItems reads a placeOrderRequest. Every item must be a JSON object;
// numbers are kept as json.Number so they round-trip unchanged.
func decodeItems(body io.Reader) ([]order.Description, error) {
	dec := json.NewDecoder(body)
	var req placeOrderRequest
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: %v", order.ErrInvalidRequest, err)
	}
	items := make([]order.Description, 0, len(req.Items))
	for i, raw := range req.Items {
		d, err := decodeDescription(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: items[%d]: %v", order.ErrInvalidRequest, i, err)
		}
		items = append(items, d)
	}
	return items, nil
}

func decodeDescription(raw json.RawMessage) (order.Description, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var d order.Description
	if err := dec.Decode(&d); err != nil {
		return nil, err
	}
	return d, nil
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, order.ErrInvalidRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, order.ErrNotFound):
		http.NotFound(w, r)
	default:
		h.log.Error(ctx, "request failed", "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
