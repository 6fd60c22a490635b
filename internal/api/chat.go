package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vendorbridge/bizops/internal/models"
	"github.com/vendorbridge/bizops/internal/realtime"
	"github.com/vendorbridge/bizops/pkg/utils"
)

type messageRequest struct {
	Sender string `json:"sender" binding:"required"`
	Body   string `json:"body" binding:"required"`
}

type typingRequest struct {
	Name string `json:"name" binding:"required"`
}

// postMessage forwards a message to the hosted chat provider and mirrors
// it locally. The provider owns canonical history; a provider failure is
// surfaced and nothing is mirrored.
func (a *API) postMessage(c *gin.Context) {
	channelKey := c.Param("channel")

	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid message payload")
		return
	}

	body := utils.SanitizeString(req.Body)
	ts, err := a.messenger.Post(channelKey, req.Sender, body)
	if err != nil {
		respondProviderFailure(c, err)
		return
	}

	message := models.Message{
		ChannelKey: channelKey,
		Sender:     req.Sender,
		Body:       body,
		ProviderTS: ts,
	}
	if err := a.messages.Create(&message); err != nil {
		a.logger.Error("Failed to mirror message", zap.Error(err))
		respondInternal(c, "failed to record message")
		return
	}

	event := realtime.NewEvent(realtime.TypeMessagePosted, channelKey, req.Sender).
		WithPayload("body", body)
	a.dispatcher.PublishAsync(c.Request.Context(), event)

	c.JSON(http.StatusCreated, message)
}

func (a *API) listMessages(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondBadRequest(c, "invalid limit")
			return
		}
		limit = n
	}

	messages, err := a.messages.ListByChannel(c.Param("channel"), limit)
	if err != nil {
		respondInternal(c, "failed to list messages")
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// signalTyping is the HTTP fallback for clients without a websocket. It
// feeds the same tracker the websocket path does.
func (a *API) signalTyping(c *gin.Context) {
	channelKey := c.Param("channel")

	var req typingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid typing payload")
		return
	}

	a.tracker.Touch(channelKey, req.Name)

	event := realtime.NewEvent(realtime.TypeTyping, channelKey, req.Name)
	a.dispatcher.PublishAsync(c.Request.Context(), event)

	c.Status(http.StatusAccepted)
}

func (a *API) listTyping(c *gin.Context) {
	names := a.tracker.Typing(c.Param("channel"))
	c.JSON(http.StatusOK, gin.H{"typing": names})
}

func (a *API) serveWebsocket(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		respondBadRequest(c, "name query parameter is required")
		return
	}
	if err := a.hub.ServeWS(c.Writer, c.Request, c.Param("channel"), name); err != nil {
		// The upgrader has already written the HTTP error response.
		a.logger.Warn("Websocket upgrade failed", zap.Error(err))
	}
}
