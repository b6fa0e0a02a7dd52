package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"shopease-main/internal/contact"
	typesContact "shopease-main/internal/types/contact"
	myErr "shopease-main/internal/types/errors"
)

type ContactHandler struct {
	Logger *zap.SugaredLogger
}

func NewContactHandler(l *zap.SugaredLogger) *ContactHandler {
	return &ContactHandler{
		Logger: l,
	}
}

// Submit - POST /contact
// Сообщение никуда не отправляется, только проверяется
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var form typesContact.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	msg, err := contact.Submit(&form)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(typesContact.Result{
		Message: msg,
		Form:    form,
	})
	if err != nil {
		h.Logger.Warnw("error writing response", "err", err)
		return
	}

	h.Logger.Infof("contact message received")
}
