package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/flood-allocator/backend/internal/domain"
	"github.com/sysu-ecnc-dev/flood-allocator/backend/internal/utils"
)

func (h *Handler) GetAllZones(w http.ResponseWriter, r *http.Request) {
	zones, err := h.repository.GetAllZones()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取区域列表成功", zones)
}

func (h *Handler) CreateZone(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string `json:"name" validate:"required,max=100"`
		Population int    `json:"population" validate:"min=0"`
		Risk       int    `json:"risk" validate:"required,min=1"`
	}

	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	zone := &domain.Zone{
		Name:       req.Name,
		Population: req.Population,
		Risk:       req.Risk,
	}
	if err := utils.ValidateZone(zone); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateZone(zone); err != nil {
		h.zoneWriteError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建区域成功", zone)
}

func (h *Handler) GetZone(w http.ResponseWriter, r *http.Request) {
	zone := r.Context().Value(ZoneCtx).(*domain.Zone)
	h.successResponse(w, r, "获取区域信息成功", zone)
}

func (h *Handler) UpdateZone(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       *string `json:"name" validate:"omitempty,max=100"`
		Population *int    `json:"population" validate:"omitempty,min=0"`
		Risk       *int    `json:"risk" validate:"omitempty,min=1"`
	}

	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	zone := r.Context().Value(ZoneCtx).(*domain.Zone)

	if req.Name != nil {
		zone.Name = *req.Name
	}
	if req.Population != nil {
		zone.Population = *req.Population
	}
	if req.Risk != nil {
		zone.Risk = *req.Risk
	}
	if err := utils.ValidateZone(zone); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateZone(zone); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// 版本号不一致，说明在读取之后被其他人修改过
			h.errorResponse(w, r, "更新区域信息失败，请重试")
		default:
			h.zoneWriteError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新区域信息成功", zone)
}

func (h *Handler) DeleteZone(w http.ResponseWriter, r *http.Request) {
	zone := r.Context().Value(ZoneCtx).(*domain.Zone)

	if err := h.repository.DeleteZone(zone.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除区域成功", nil)
}

func (h *Handler) zoneWriteError(w http.ResponseWriter, r *http.Request, err error) {
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr):
		switch pgErr.ConstraintName {
		case "zones_name_key":
			h.badRequest(w, r, errors.New("区域名称已存在"))
		case "zones_population_check", "zones_risk_check":
			h.badRequest(w, r, errors.New("人口不能为负数且风险等级至少为 1"))
		default:
			h.internalServerError(w, r, err)
		}
	default:
		h.internalServerError(w, r, err)
	}
}
