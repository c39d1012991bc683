package ledger

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/avifonte/ledgerdesk-backend/api/responses"
	"github.com/avifonte/ledgerdesk-backend/api/validators"
	"github.com/avifonte/ledgerdesk-backend/internal/audit"
	"github.com/avifonte/ledgerdesk-backend/internal/export"
	internalledger "github.com/avifonte/ledgerdesk-backend/internal/ledger"
	"github.com/avifonte/ledgerdesk-backend/pkg/db/models"
	"github.com/avifonte/ledgerdesk-backend/pkg/enums"
	pkgerrors "github.com/avifonte/ledgerdesk-backend/pkg/errors"
	"github.com/avifonte/ledgerdesk-backend/pkg/logger"
	"github.com/avifonte/ledgerdesk-backend/pkg/pagination"
)

// CreateEntry records a new ledger entry against an order.
func CreateEntry(svc internalledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParseUUIDParam(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req createEntryRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.CreateEntry(r.Context(), internalledger.CreateEntryInput{
			OrderID:            orderID,
			Type:               enums.TransactionType(req.Type),
			Category:           enums.EntryCategory(req.Category),
			Amount:             req.Amount,
			Method:             enums.PaymentMethod(req.Method),
			ExternalPaymentID:  req.ExternalPaymentID,
			ProcessorConfirmed: req.ProcessorConfirmed,
			ProofFileURL:       req.ProofFileURL,
			Notes:              req.Notes,
			Actor:              actor,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}

// ListEntries pages through one order's entries with optional filters.
func ListEntries(svc internalledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParseUUIDParam(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters, err := buildListFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 1_000_000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListEntries(r.Context(), internalledger.ListEntriesInput{
			OrderID: orderID,
			Filters: filters,
			Page:    pagination.Params{Limit: limit, Offset: offset},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func buildListFilters(r *http.Request) (internalledger.ListFilters, error) {
	var filters internalledger.ListFilters

	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status := enums.EntryStatus(raw)
		if !status.IsValid() {
			return filters, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter").WithDetails(map[string]any{"field": "status"})
		}
		filters.Status = &status
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("type")); raw != "" {
		entryType := enums.TransactionType(raw)
		if !entryType.IsValid() {
			return filters, pkgerrors.New(pkgerrors.CodeValidation, "invalid type filter").WithDetails(map[string]any{"field": "type"})
		}
		filters.Type = &entryType
	}

	from, err := validators.ParseQueryTime(r, "from")
	if err != nil {
		return filters, err
	}
	filters.From = from

	to, err := validators.ParseQueryTime(r, "to")
	if err != nil {
		return filters, err
	}
	filters.To = to

	filters.Search = strings.TrimSpace(r.URL.Query().Get("search"))
	return filters, nil
}

// ApproveEntry moves a pending entry to approved.
func ApproveEntry(svc internalledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entryID, err := validators.ParseUUIDParam(r, "entryID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req approveEntryRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		actor.ApprovalCode = req.ApprovalCode

		var method *enums.PaymentMethod
		if req.Method != nil {
			parsed := enums.PaymentMethod(*req.Method)
			method = &parsed
		}

		entry, err := svc.ApproveEntry(r.Context(), internalledger.ApproveEntryInput{
			EntryID:      entryID,
			Actor:        actor,
			Method:       method,
			ProofFileURL: req.ProofFileURL,
			Notes:        req.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entry)
	}
}

// VoidEntry voids an entry with a mandatory reason.
func VoidEntry(svc internalledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entryID, err := validators.ParseUUIDParam(r, "entryID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req voidEntryRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.VoidEntry(r.Context(), internalledger.VoidEntryInput{
			EntryID: entryID,
			Actor:   actor,
			Reason:  req.Reason,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entry)
	}
}

// EntryAudit returns the audit trail for one entry, newest first.
func EntryAudit(auditSvc audit.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entryID, err := validators.ParseUUIDParam(r, "entryID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := auditSvc.ListByEntryID(r.Context(), entryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list audit entries"))
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// ExportEntries streams the order's non-voided entries as CSV.
func ExportEntries(svc internalledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParseUUIDParam(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// Export ignores paging; pull the full set in max-size pages.
		var entries []models.LedgerEntry
		offset := 0
		for {
			result, err := svc.ListEntries(r.Context(), internalledger.ListEntriesInput{
				OrderID: orderID,
				Page:    pagination.Params{Limit: pagination.MaxLimit, Offset: offset},
			})
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			entries = append(entries, result.Entries...)
			if !result.HasMore {
				break
			}
			offset += pagination.MaxLimit
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "ledger-"+orderID.String()+".csv"))

		if err := export.WriteEntriesCSV(w, entries); err != nil {
			if logg != nil {
				logg.Error(r.Context(), "write csv export", err)
			}
		}
	}
}
