package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lessonhub/auth-service/internal/application"
)

func (h *Handler) listLessons(w http.ResponseWriter, r *http.Request) {
	identityID, _ := identityIDFromContext(r.Context())
	items, err := h.service.ListLessons(r.Context(), identityID)
	if err != nil {
		writeMappedError(r.Context(), w, "list_lessons", err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{
		"lessons": items,
		"count":   len(items),
	})
}

func (h *Handler) getLesson(w http.ResponseWriter, r *http.Request) {
	identityID, _ := identityIDFromContext(r.Context())
	id, ok := parseIDParam(chi.URLParam(r, "lesson_id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid lesson id")
		return
	}
	lesson, err := h.service.GetLesson(r.Context(), identityID, id)
	if err != nil {
		writeMappedError(r.Context(), w, "get_lesson", err)
		return
	}
	writeSuccess(w, http.StatusOK, lesson)
}

func (h *Handler) createLesson(w http.ResponseWriter, r *http.Request) {
	var input application.LessonInput
	if err := decodeBody(r, &input); err != nil {
		writeValidationError(r.Context(), w, "create_lesson", err)
		return
	}
	lesson, err := h.service.CreateLesson(r.Context(), input)
	if err != nil {
		writeMappedError(r.Context(), w, "create_lesson", err)
		return
	}
	writeSuccess(w, http.StatusCreated, lesson)
}

func (h *Handler) updateLesson(w http.ResponseWriter, r *http.Request) {
	identityID, _ := identityIDFromContext(r.Context())
	id, ok := parseIDParam(chi.URLParam(r, "lesson_id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid lesson id")
		return
	}
	var input application.LessonInput
	if err := decodeBody(r, &input); err != nil {
		writeValidationError(r.Context(), w, "update_lesson", err)
		return
	}
	lesson, err := h.service.UpdateLesson(r.Context(), identityID, id, input)
	if err != nil {
		writeMappedError(r.Context(), w, "update_lesson", err)
		return
	}
	writeSuccess(w, http.StatusOK, lesson)
}

func (h *Handler) deleteLesson(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(chi.URLParam(r, "lesson_id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid lesson id")
		return
	}
	if err := h.service.DeleteLesson(r.Context(), id); err != nil {
		writeMappedError(r.Context(), w, "delete_lesson", err)
		return
	}
	writeMessage(w, http.StatusOK, "Lesson deleted")
}

func (h *Handler) completeLesson(w http.ResponseWriter, r *http.Request) {
	identityID, ok := identityIDFromContext(r.Context())
	if !ok || identityID == uuid.Nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing identity")
		return
	}
	id, ok := parseIDParam(chi.URLParam(r, "lesson_id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid lesson id")
		return
	}
	if err := h.service.CompleteLesson(r.Context(), identityID, id); err != nil {
		writeMappedError(r.Context(), w, "complete_lesson", err)
		return
	}
	writeMessage(w, http.StatusOK, "Lesson marked as completed")
}
