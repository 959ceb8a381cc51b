package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-event-scheduler/internal/application"
	"github.com/sanosuguru/go-event-scheduler/internal/domain/event"
	"github.com/sanosuguru/go-event-scheduler/internal/pkg/logger"
)

type EventHandler struct {
	eventService EventServiceInterface
}

func NewEventHandler(eventService EventServiceInterface) *EventHandler {
	return &EventHandler{eventService: eventService}
}

type CreateEventRequest struct {
	Title        string `json:"event_title" validate:"required" example:"yuv1"`
	Location     string `json:"event_location" validate:"required" example:"tokyo"`
	Venue        string `json:"event_venue" validate:"required" example:"budokan"`
	Participants int64  `json:"number_of_participants" validate:"gt=0" example:"100"`
	EventTime    string `json:"event_time" validate:"required" example:"2030-12-31T18:00:00Z"`
}

// UpdateEventRequest は部分更新のリクエスト。省略した項目は変更しない
// 文字列の項目を空文字にすることはできない
type UpdateEventRequest struct {
	Title        *string `json:"new_event_title,omitempty" validate:"omitempty,min=1" example:"yuv2"`
	Location     *string `json:"new_event_location,omitempty" validate:"omitempty,min=1" example:"osaka"`
	Venue        *string `json:"new_event_venue,omitempty" validate:"omitempty,min=1" example:"kyocera dome"`
	Participants *int64  `json:"new_number_of_participants,omitempty" validate:"omitempty,gt=0" example:"200"`
	EventTime    *string `json:"new_event_time,omitempty" example:"2031-01-01T18:00:00Z"`
}

type EventResponse struct {
	ID           string `json:"event_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Title        string `json:"event_title" example:"yuv1"`
	Location     string `json:"event_location" example:"tokyo"`
	Venue        string `json:"event_venue" example:"budokan"`
	Participants int64  `json:"number_of_participants" example:"100"`
	EventTime    string `json:"event_time" example:"12/31/2030, 18:00:00"`
	CreationTime string `json:"creation_time" example:"10/19/2026, 09:00:00"`
	ModifyTime   string `json:"modify_time" example:"10/19/2026, 09:00:00"`
}

func toEventResponse(e *event.Event) *EventResponse {
	r := e.Serialize()
	return &EventResponse{
		ID:           r.EventID,
		Title:        r.Title,
		Location:     r.Location,
		Venue:        r.Venue,
		Participants: r.Participants,
		EventTime:    r.EventTime,
		CreationTime: r.CreationTime,
		ModifyTime:   r.ModifyTime,
	}
}

func toEventResponses(events []*event.Event) []*EventResponse {
	responses := make([]*EventResponse, len(events))
	for i, e := range events {
		responses[i] = toEventResponse(e)
	}
	return responses
}

// toHTTPError はサービスのエラーをステータスに振り分ける
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, event.ErrEventNotFound):
		return echo.NewHTTPError(http.StatusNotFound, event.ErrEventNotFound.Error())
	case event.IsValidationError(err), errors.Is(err, application.ErrInvalidSortKey):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "内部サーバーエラー").SetInternal(err)
	}
}

func parseEventTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "開催時刻の形式が不正です")
	}
	return t, nil
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return nil
}

// Create godoc
// @Summary イベントを作成
// @Description 新しいイベントを作成します。開催時刻は未来である必要があります
// @Tags events
// @Accept json
// @Produce json
// @Param request body CreateEventRequest true "イベント情報"
// @Success 201 {object} EventResponse
// @Failure 400 {object} api.ErrorResponse
// @Router /events [post]
func (h *EventHandler) Create(c echo.Context) error {
	var req CreateEventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	eventTime, err := parseEventTime(req.EventTime)
	if err != nil {
		return err
	}

	input := application.CreateEventInput{
		Title:        req.Title,
		Location:     req.Location,
		Venue:        req.Venue,
		Participants: req.Participants,
		EventTime:    eventTime,
	}

	e, err := h.eventService.CreateEvent(c.Request().Context(), input)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, toEventResponse(e))
}

// GetByID godoc
// @Summary イベントを取得
// @Description 指定IDのイベントを取得します
// @Tags events
// @Produce json
// @Param id path string true "イベントID"
// @Success 200 {object} EventResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /events/{id} [get]
func (h *EventHandler) GetByID(c echo.Context) error {
	e, err := h.eventService.GetEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toEventResponse(e))
}

// List godoc
// @Summary イベント一覧を取得
// @Description イベントの一覧を取得します。sort_key 指定時は降順
// @Tags events
// @Produce json
// @Param sort_key query string false "並び替えキー" Enums(event_time, date, participants, number_of_participants, creation_time)
// @Success 200 {array} EventResponse
// @Failure 400 {object} api.ErrorResponse
// @Router /events [get]
func (h *EventHandler) List(c echo.Context) error {
	sortKey, err := application.ParseSortKey(c.QueryParam("sort_key"))
	if err != nil {
		return toHTTPError(err)
	}

	events, err := h.eventService.ListEvents(c.Request().Context(), sortKey)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toEventResponses(events))
}

// ListByLocation godoc
// @Summary 開催地でイベントを絞り込む
// @Tags events
// @Produce json
// @Param location path string true "開催地"
// @Param sort_key query string false "並び替えキー"
// @Success 200 {array} EventResponse
// @Failure 400 {object} api.ErrorResponse
// @Router /events/location/{location} [get]
func (h *EventHandler) ListByLocation(c echo.Context) error {
	sortKey, err := application.ParseSortKey(c.QueryParam("sort_key"))
	if err != nil {
		return toHTTPError(err)
	}

	events, err := h.eventService.ListEventsByLocation(c.Request().Context(), c.Param("location"), sortKey)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toEventResponses(events))
}

// ListByVenue godoc
// @Summary 会場でイベントを絞り込む
// @Tags events
// @Produce json
// @Param venue path string true "会場"
// @Param sort_key query string false "並び替えキー"
// @Success 200 {array} EventResponse
// @Failure 400 {object} api.ErrorResponse
// @Router /events/venue/{venue} [get]
func (h *EventHandler) ListByVenue(c echo.Context) error {
	sortKey, err := application.ParseSortKey(c.QueryParam("sort_key"))
	if err != nil {
		return toHTTPError(err)
	}

	events, err := h.eventService.ListEventsByVenue(c.Request().Context(), c.Param("venue"), sortKey)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toEventResponses(events))
}

// Update godoc
// @Summary イベントを更新
// @Description 指定IDのイベントを部分更新します
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "イベントID"
// @Param request body UpdateEventRequest true "更新する項目"
// @Success 200 {object} EventResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /events/{id} [put]
func (h *EventHandler) Update(c echo.Context) error {
	var req UpdateEventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	input := application.UpdateEventInput{
		ID:           c.Param("id"),
		Title:        req.Title,
		Location:     req.Location,
		Venue:        req.Venue,
		Participants: req.Participants,
	}
	if req.EventTime != nil {
		eventTime, err := parseEventTime(*req.EventTime)
		if err != nil {
			return err
		}
		input.EventTime = &eventTime
	}

	e, err := h.eventService.UpdateEvent(c.Request().Context(), input)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toEventResponse(e))
}

// Delete godoc
// @Summary イベントを削除
// @Description 指定IDのイベントを削除します。存在しない場合も 204 を返します
// @Tags events
// @Param id path string true "イベントID"
// @Success 204
// @Failure 500 {object} api.ErrorResponse
// @Router /events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.eventService.DeleteEvent(c.Request().Context(), id); err != nil {
		if !errors.Is(err, event.ErrEventNotFound) {
			return toHTTPError(err)
		}
		logger.Debug("削除対象のイベントが存在しません", logger.EventID(id))
	}
	return c.NoContent(http.StatusNoContent)
}
