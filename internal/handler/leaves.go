package handler

import (
	"net/http"

	"github.com/caaaae/E-Leave/internal/apierror"
	"github.com/caaaae/E-Leave/internal/dto"
	"github.com/caaaae/E-Leave/internal/infra"
	"github.com/caaaae/E-Leave/internal/service"

	"github.com/gin-gonic/gin"
)

// maxDocumentSize caps supporting document uploads at 10 MiB.
const maxDocumentSize = 10 << 20

type LeavesHandler struct {
	svc  service.LeaveService
	docs *infra.DocumentStore
}

func NewLeavesHandler(svc service.LeaveService, docs *infra.DocumentStore) *LeavesHandler {
	return &LeavesHandler{svc: svc, docs: docs}
}

// Create registers a new leave request owned by the caller, status pending.
func (h *LeavesHandler) Create(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}
	var req dto.CreateLeaveRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), cl.ID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListOwn returns the caller's leave requests, newest first.
func (h *LeavesHandler) ListOwn(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListOwn(c.Request.Context(), cl.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListAll returns every leave request in the store. Staff only (guarded
// by middleware on the route).
func (h *LeavesHandler) ListAll(c *gin.Context) {
	resp, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update applies a partial edit to a request. Owner or staff.
func (h *LeavesHandler) Update(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateLeaveRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), cl, id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete removes a request and its stored document. Owner or staff.
func (h *LeavesHandler) Delete(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), cl, id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadDocument stores a supporting document for the caller's own request.
func (h *LeavesHandler) UploadDocument(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("supporting_doc")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Missing supporting_doc file"))
		return
	}
	if fileHeader.Size > maxDocumentSize {
		c.JSON(http.StatusRequestEntityTooLarge, apierror.New("Document exceeds 10 MiB"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		_ = c.Error(err)
		return
	}
	defer f.Close()

	key, err := h.docs.Save(f, fileHeader.Filename)
	if err != nil {
		_ = c.Error(err)
		return
	}

	resp, err := h.svc.AttachDocument(c.Request.Context(), cl, id, key)
	if err != nil {
		// The record rejected the attachment — drop the orphaned blob
		_ = h.docs.Remove(key)
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Approve transitions a pending request to approved. Staff only.
func (h *LeavesHandler) Approve(c *gin.Context) {
	h.decide(c, true)
}

// Reject transitions a pending request to rejected. Staff only.
func (h *LeavesHandler) Reject(c *gin.Context) {
	h.decide(c, false)
}

func (h *LeavesHandler) decide(c *gin.Context, approve bool) {
	cl, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	resp, err := h.svc.Decide(c.Request.Context(), cl, id, approve)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
