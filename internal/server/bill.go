package server

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	billdomain "github.com/chatgptnotes/esic-billing/internal/bill/domain"
	"github.com/chatgptnotes/esic-billing/internal/billdoc"
	"github.com/chatgptnotes/esic-billing/internal/providers/pdf"
)

type saveBillRequest struct {
	Doc      *billdoc.Document `json:"doc" binding:"required"`
	BillNo   string            `json:"bill_no"`
	ClaimID  string            `json:"claim_id"`
	Category string            `json:"category"`
	BillDate *time.Time        `json:"bill_date"`
}

func (s *Server) GetBill(c *gin.Context) {
	resp, err := s.billSvc.Load(c.Request.Context(), c.Param("visitId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) SaveBill(c *gin.Context) {
	var req saveBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	err := s.billSvc.Save(c.Request.Context(), billdomain.SaveBillRequest{
		VisitID:  c.Param("visitId"),
		Doc:      req.Doc,
		BillNo:   req.BillNo,
		ClaimID:  req.ClaimID,
		Category: req.Category,
		BillDate: req.BillDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.billSvc.Load(c.Request.Context(), c.Param("visitId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) RenderBillPDF(c *gin.Context) {
	visitID := c.Param("visitId")

	resp, err := s.billSvc.Load(c.Request.Context(), visitID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	billDate := ""
	if resp.BillDate != nil {
		billDate = resp.BillDate.Format("02/01/2006")
	}

	reader, err := s.pdfSvc.RenderBill(c.Request.Context(), pdf.BillData{
		HospitalName:    s.cfg.HospitalName,
		HospitalAddress: s.cfg.HospitalAddress,
		VisitID:         visitID,
		BillNo:          resp.BillNo,
		ClaimID:         resp.ClaimID,
		Category:        resp.Category,
		BillDate:        billDate,
		Doc:             resp.Doc,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if reader == nil {
		AbortWithError(c, ErrInternal)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="final-bill-`+visitID+`.pdf"`)
	c.Header("Content-Type", "application/pdf")
	if _, err := io.Copy(c.Writer, reader); err != nil {
		s.log.Warn("stream bill pdf failed")
	}
}
