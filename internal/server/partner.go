package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// partnerNames maps recognized referral codes to the organization names
// shown in the partner badge.
var partnerNames = map[string]string{
	"special-olympics": "Special Olympics",
	"best-buddies":     "Best Buddies International",
	"axis-dance":       "AXIS Dance Company",
}

// PartnerName returns the display name for a referral code. Unrecognized
// codes still get branded with a generic name.
func PartnerName(code string) string {
	if name, ok := partnerNames[code]; ok {
		return name
	}
	return "Partner Organization"
}

type partnerRequest struct {
	Partner string `json:"partner" binding:"required"`
}

type partnerResponse struct {
	Partner string `json:"partner"`
	Name    string `json:"name,omitempty"`
	Badge   string `json:"badge,omitempty"`
}

func (s *Server) handleGetPartner(c *gin.Context) {
	if s.opts.Partners == nil {
		c.JSON(http.StatusOK, partnerResponse{})
		return
	}

	code, err := s.opts.Partners.Partner()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if code == "" {
		c.JSON(http.StatusOK, partnerResponse{})
		return
	}

	name := PartnerName(code)
	c.JSON(http.StatusOK, partnerResponse{
		Partner: code,
		Name:    name,
		Badge:   "Provided by " + name,
	})
}

// handleSetPartner records a referral code, last write wins. Clients send
// it when they arrive through a partner link.
func (s *Server) handleSetPartner(c *gin.Context) {
	var req partnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "partner is required"})
		return
	}

	if s.opts.Partners != nil {
		if err := s.opts.Partners.SetPartner(req.Partner); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	name := PartnerName(req.Partner)
	log.Info().Str("partner", req.Partner).Str("name", name).Msg("partner referral recorded")
	c.JSON(http.StatusOK, partnerResponse{
		Partner: req.Partner,
		Name:    name,
		Badge:   "Provided by " + name,
	})
}
