/*
Package handler provides HTTP handler functions for direct messages.
*/
package handler

import (
	"net/http"
	"strings"

	"github.com/TaiefArnob/InstaVista/internal/app/realtime"
	"github.com/TaiefArnob/InstaVista/internal/pkg/errs"
	"github.com/TaiefArnob/InstaVista/internal/pkg/logx"
	"github.com/TaiefArnob/InstaVista/internal/pkg/req"
	"github.com/TaiefArnob/InstaVista/internal/pkg/resp"
)

type SendMessageInput struct {
	Message string `json:"message"`
}

// HandleSendMessage stores a direct message to the user in the URL and then
// pushes it to the receiver's live connection. The push happens strictly
// after the store write returns, so a delivered event always refers to a
// message that exists.
func HandleSendMessage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		senderID, customErr := callerID(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		receiverID, customErr := objectIDParam(r, "id")
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var input SendMessageInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if strings.TrimSpace(input.Message) == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrMessageTextRequired))
			return
		}

		message, err := deps.Messages.Send(r.Context(), senderID, receiverID, input.Message)
		if err != nil {
			logx.Error(err, "send_message: store write failed", "sender", senderID.Hex(), "receiver", receiverID.Hex())
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		deps.Gateway.Notify(receiverID.Hex(), realtime.EventNewMessage, message)

		resp.RespondStatus(w, r, http.StatusCreated, "Message sent successfully.", map[string]any{"newMessage": message})
	}
}

// HandleGetMessages returns the conversation history between the caller and
// the user in the URL, oldest first.
func HandleGetMessages(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		senderID, customErr := callerID(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		receiverID, customErr := objectIDParam(r, "id")
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		messages, err := deps.Messages.History(r.Context(), senderID, receiverID)
		if err != nil {
			logx.Error(err, "get_messages: query failed", "sender", senderID.Hex(), "receiver", receiverID.Hex())
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, "Messages fetched.", map[string]any{"messages": messages})
	}
}
