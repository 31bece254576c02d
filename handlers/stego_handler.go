// Package handlers is made to handle requests
package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"imagestego/imaging"
	"imagestego/models"
	"imagestego/stego"
)

type StegoHandler struct {
	imageCodec *imaging.ImageCodec
}

func NewStegoHandler() *StegoHandler {
	return &StegoHandler{
		imageCodec: imaging.NewImageCodec(),
	}
}

func (h *StegoHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Image steganography API is running",
		"version": "1.0.0",
	})
}

func (h *StegoHandler) EmbedSecret(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil { // 32MB limit
		c.JSON(http.StatusBadRequest, models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to parse form: %v", err),
		})
		return
	}

	carrierFile, carrierHeader, err := c.Request.FormFile("carrier_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.StegoResponse{
			Success: false,
			Message: "Carrier file is required",
		})
		return
	}
	defer carrierFile.Close()

	secretFile, secretHeader, err := c.Request.FormFile("secret_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.StegoResponse{
			Success: false,
			Message: "Secret file is required",
		})
		return
	}
	defer secretFile.Close()

	if err := imaging.ValidateFileType(carrierHeader.Filename, imaging.RoleCarrier); err != nil {
		c.JSON(http.StatusBadRequest, models.StegoResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	if err := imaging.ValidateFileType(secretHeader.Filename, imaging.RoleSecret); err != nil {
		c.JSON(http.StatusBadRequest, models.StegoResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	carrier, err := h.imageCodec.Decode(carrierFile)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to decode carrier image: %v", err),
		})
		return
	}

	secret, err := h.imageCodec.Decode(secretFile)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to decode secret image: %v", err),
		})
		return
	}

	stegoImage, err := stego.Embed(carrier, secret)
	if err != nil {
		var tooLarge *stego.SecretTooLargeError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusBadRequest, models.StegoResponse{
				Success: false,
				Message: fmt.Sprintf("Secret too large. Carrier holds %d elements, embedding requires %d",
					tooLarge.Available, tooLarge.Required),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to embed secret: %v", err),
		})
		return
	}

	// The response is always PNG so the embedded bit plane survives.
	var buf bytes.Buffer
	if err := h.imageCodec.Encode(&buf, stegoImage, "png"); err != nil {
		c.JSON(http.StatusInternalServerError, models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to encode stego image: %v", err),
		})
		return
	}

	psnr := imaging.CalculatePSNR(carrier.Data, stegoImage.Data)

	baseFilename := strings.TrimSuffix(carrierHeader.Filename, filepath.Ext(carrierHeader.Filename))
	outputFilename := fmt.Sprintf("%s_stego.png", baseFilename)

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", outputFilename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))
	c.Header("X-Stego-Method", "Image bit-plane LSB")
	c.Header("X-Stego-PSNR", fmt.Sprintf("%.2f", psnr))

	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (h *StegoHandler) ExtractSecret(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil { // 32MB limit
		c.JSON(http.StatusBadRequest, models.ExtractResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to parse form: %v", err),
		})
		return
	}

	imageFile, imageHeader, err := c.Request.FormFile("image_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ExtractResponse{
			Success: false,
			Message: "Image file is required",
		})
		return
	}
	defer imageFile.Close()

	// Only lossless containers can still hold an intact bit plane.
	if err := imaging.ValidateLosslessFileType(imageHeader.Filename, imaging.RoleImage); err != nil {
		c.JSON(http.StatusBadRequest, models.ExtractResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	img, err := h.imageCodec.Decode(imageFile)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ExtractResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to decode image: %v", err),
		})
		return
	}

	secret, err := stego.Extract(img)
	if err != nil {
		if errors.Is(err, stego.ErrNoSecret) {
			c.JSON(http.StatusUnprocessableEntity, models.ExtractResponse{
				Success: false,
				Message: fmt.Sprintf("There does not seem to be any secret hiding in '%s'", imageHeader.Filename),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ExtractResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to extract secret: %v", err),
		})
		return
	}

	var buf bytes.Buffer
	if err := h.imageCodec.Encode(&buf, secret, "png"); err != nil {
		c.JSON(http.StatusInternalServerError, models.ExtractResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to encode extracted secret: %v", err),
		})
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Content-Disposition", "attachment; filename=secret.png")
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))

	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
