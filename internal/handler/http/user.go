package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/luisfsill/Ponto-Digital/internal/domain/user"
	"github.com/luisfsill/Ponto-Digital/internal/handler/http/response"
)

type UserHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	BindDevice(w http.ResponseWriter, r *http.Request)
	RenameDevice(w http.ResponseWriter, r *http.Request)
	RemoveDevice(w http.ResponseWriter, r *http.Request)
}

type userHandlerImpl struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &userHandlerImpl{userService: userService}
}

func (h *userHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, users)
}

func (h *userHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.userService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, u)
}

func (h *userHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req user.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create user decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	u, err := h.userService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "User created successfully", u)
}

func (h *userHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update user decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	u, err := h.userService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "User updated successfully", u)
}

func (h *userHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.userService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "User deleted successfully", nil)
}

// BindDevice is public: the employee's browser calls it right after the admin
// hands over the binding link.
func (h *userHandlerImpl) BindDevice(w http.ResponseWriter, r *http.Request) {
	var req user.BindDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Bind device decode error", "error", err)
		response.BadRequest(w, "Formato de requisição inválido", nil)
		return
	}

	resp, err := h.userService.BindDevice(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if resp.AlreadyBound {
		response.SuccessWithMessage(w, "Dispositivo já vinculado", resp)
		return
	}
	response.Created(w, "Dispositivo vinculado com sucesso", resp)
}

func (h *userHandlerImpl) RenameDevice(w http.ResponseWriter, r *http.Request) {
	var req user.RenameDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Rename device decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = chi.URLParam(r, "id")
	req.DeviceID = chi.URLParam(r, "deviceID")

	d, err := h.userService.RenameDevice(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, d)
}

func (h *userHandlerImpl) RemoveDevice(w http.ResponseWriter, r *http.Request) {
	if err := h.userService.RemoveDevice(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "deviceID")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Device removed successfully", nil)
}
