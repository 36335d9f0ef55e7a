package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sysu-ecnc-dev/flood-allocator/backend/internal/simulation"
	"github.com/sysu-ecnc-dev/flood-allocator/backend/internal/utils"
)

func (h *Handler) CreateSimulation(w http.ResponseWriter, r *http.Request) {
	var req simulation.Request

	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := utils.ValidateSimulationRequest(&req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 算法参数在入队前检查，避免 worker 才发现请求无效
	if _, err := h.runner.Drivers(&req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	job := simulation.NewJob(req)
	if err := simulation.Submit(r.Context(), h.store, h.publisher, h.config.RabbitMQ.SimulationQueue, job); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "已提交自动分配任务", job)
}

func (h *Handler) GetSimulation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	job, err := h.store.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, simulation.ErrJobNotFound):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "获取自动分配任务成功", job)
}
