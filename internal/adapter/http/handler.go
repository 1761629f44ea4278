package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/rs/zerolog/log"

	"etherpets/internal/app/account"
	"etherpets/internal/app/care"
	chatuc "etherpets/internal/app/chat"
	"etherpets/internal/app/decay"
	"etherpets/internal/app/maintenance"
	"etherpets/internal/app/pets"
	"etherpets/internal/app/ports"
	"etherpets/internal/app/progress"
	"etherpets/internal/domain/pet"
	"etherpets/internal/domain/quest"
	"etherpets/internal/domain/shop"
	"etherpets/internal/domain/user"
)

type Handler struct {
	AccountUC     account.UseCase
	PetsUC        pets.UseCase
	CareUC        care.UseCase
	ChatUC        chatuc.UseCase
	ProgressUC    progress.UseCase
	DecayUC       decay.UseCase
	MaintenanceUC maintenance.UseCase
	KPI           kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	users := s.Group("/api/users")
	users.POST("/login", h.login)
	users.GET("/:wallet", h.getUser)
	users.POST("/:wallet/daily", h.claimDaily)
	users.POST("/:wallet/purchase", h.purchase)
	users.POST("/:wallet/use-item", h.useItem)
	users.GET("/:wallet/pets", h.listPets)
	users.GET("/:wallet/achievements", h.achievements)
	users.GET("/:wallet/quests", h.quests)
	users.POST("/:wallet/quests/:quest/claim", h.claimQuest)

	p := s.Group("/api/pets")
	p.POST("", h.createPet)
	p.GET("/:id", h.getPet)
	p.POST("/:id/actions", h.act)
	p.PUT("/:id/mood", h.setMood)
	p.GET("/:id/history", h.history)
	p.POST("/:id/chat", h.chat)

	s.GET("/api/shop/items", h.shopItems)

	s.POST("/ops/decay", h.sweep)
	s.POST("/ops/cleanup", h.cleanup)
	s.GET("/ops/kpi", h.kpi)
}

type loginRequest struct {
	Wallet   string `json:"walletAddress"`
	Username string `json:"username"`
}

type purchaseRequest struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

type useItemRequest struct {
	PetID  string `json:"petId"`
	ItemID string `json:"itemId"`
}

type createPetRequest struct {
	Owner   string `json:"owner"`
	Name    string `json:"name"`
	Species string `json:"species"`
}

type actionRequest struct {
	Action  string `json:"action"`
	Variant string `json:"variant,omitempty"`
}

type moodRequest struct {
	Mood string `json:"mood"`
}

type chatRequest struct {
	Message string `json:"message"`
}

func (h Handler) login(c context.Context, ctx *app.RequestContext) {
	var body loginRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	u, created, err := h.AccountUC.Login(c, body.Wallet, body.Username)
	if err != nil {
		writeError(ctx, err)
		return
	}
	status := consts.StatusOK
	if created {
		status = consts.StatusCreated
	}
	ctx.JSON(status, u)
}

func (h Handler) getUser(c context.Context, ctx *app.RequestContext) {
	u, err := h.AccountUC.Get(c, ctx.Param("wallet"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, u)
}

func (h Handler) claimDaily(c context.Context, ctx *app.RequestContext) {
	u, err := h.AccountUC.ClaimDaily(c, ctx.Param("wallet"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, u)
}

func (h Handler) purchase(c context.Context, ctx *app.RequestContext) {
	var body purchaseRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if body.Quantity == 0 {
		body.Quantity = 1
	}
	resp, err := h.AccountUC.Purchase(c, ctx.Param("wallet"), body.ItemID, body.Quantity)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) useItem(c context.Context, ctx *app.RequestContext) {
	var body useItemRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.AccountUC.UseItem(c, ctx.Param("wallet"), body.PetID, body.ItemID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) listPets(c context.Context, ctx *app.RequestContext) {
	list, err := h.PetsUC.ListByOwner(c, ctx.Param("wallet"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"pets": list})
}

func (h Handler) achievements(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ProgressUC.Achievements(c, ctx.Param("wallet"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) quests(c context.Context, ctx *app.RequestContext) {
	list, err := h.ProgressUC.Quests(c, ctx.Param("wallet"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"quests": list})
}

func (h Handler) claimQuest(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ProgressUC.ClaimQuest(c, ctx.Param("wallet"), ctx.Param("quest"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) createPet(c context.Context, ctx *app.RequestContext) {
	var body createPetRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	p, err := h.PetsUC.Create(c, pets.CreateRequest{Owner: body.Owner, Name: body.Name, Species: body.Species})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, p)
}

func (h Handler) getPet(c context.Context, ctx *app.RequestContext) {
	view, err := h.PetsUC.Get(c, ctx.Param("id"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, view)
}

func (h Handler) act(c context.Context, ctx *app.RequestContext) {
	var body actionRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.CareUC.Execute(c, care.Request{
		PetID:   ctx.Param("id"),
		Action:  pet.ActionType(strings.ToLower(strings.TrimSpace(body.Action))),
		Variant: body.Variant,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) setMood(c context.Context, ctx *app.RequestContext) {
	var body moodRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	p, err := h.PetsUC.SetMood(c, ctx.Param("id"), body.Mood)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, p)
}

func (h Handler) history(c context.Context, ctx *app.RequestContext) {
	limit, _ := strconv.Atoi(ctx.Query("limit"))
	events, err := h.PetsUC.History(c, ctx.Param("id"), limit)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"events": events})
}

func (h Handler) chat(c context.Context, ctx *app.RequestContext) {
	var body chatRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.ChatUC.Execute(c, chatuc.Request{PetID: ctx.Param("id"), Message: body.Message})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) shopItems(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]any{"items": shop.All()})
}

func (h Handler) sweep(c context.Context, ctx *app.RequestContext) {
	report, err := h.DecayUC.Sweep(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, report)
}

func (h Handler) cleanup(c context.Context, ctx *app.RequestContext) {
	deleted, err := h.MaintenanceUC.CleanupOrphans(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]int64{"deleted": deleted})
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	var notReady user.DailyNotReadyError
	switch {
	case errors.As(err, &notReady):
		ctx.JSON(consts.StatusConflict, map[string]any{
			"error": map[string]any{
				"code":              "daily_not_ready",
				"message":           err.Error(),
				"remaining_seconds": int64(notReady.Remaining.Seconds()),
			},
		})
	case errors.Is(err, user.ErrInsufficientCoins):
		writeErrorBody(ctx, consts.StatusConflict, "insufficient_coins", err.Error())
	case errors.Is(err, user.ErrInsufficientItems):
		writeErrorBody(ctx, consts.StatusConflict, "insufficient_items", err.Error())
	case errors.Is(err, quest.ErrNotCompleted):
		writeErrorBody(ctx, consts.StatusConflict, "quest_not_completed", err.Error())
	case errors.Is(err, quest.ErrAlreadyClaimed):
		writeErrorBody(ctx, consts.StatusConflict, "quest_already_claimed", err.Error())
	case errors.Is(err, progress.ErrNoPet):
		writeErrorBody(ctx, consts.StatusConflict, "no_pet", err.Error())
	case errors.Is(err, account.ErrNotOwner):
		writeErrorBody(ctx, consts.StatusForbidden, "not_owner", err.Error())
	case errors.Is(err, shop.ErrUnknownItem):
		writeErrorBody(ctx, consts.StatusNotFound, "unknown_item", err.Error())
	case errors.Is(err, progress.ErrUnknownQuest):
		writeErrorBody(ctx, consts.StatusNotFound, "unknown_quest", err.Error())
	case errors.Is(err, pet.ErrUnknownAction):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_action", err.Error())
	case errors.Is(err, user.ErrInvalidWallet):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_wallet", err.Error())
	case errors.Is(err, care.ErrInvalidRequest),
		errors.Is(err, pets.ErrInvalidName),
		errors.Is(err, pets.ErrInvalidSpecies),
		errors.Is(err, pets.ErrInvalidMood),
		errors.Is(err, chatuc.ErrInvalidMessage),
		errors.Is(err, user.ErrInvalidQuantity):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		log.Error().Err(err).Str("path", string(ctx.Path())).Msg("request failed")
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
