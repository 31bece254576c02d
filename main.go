package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"imagestego/handlers"
	"imagestego/imaging"
	"imagestego/stego"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "embed":
		fs := flag.NewFlagSet("embed", flag.ExitOnError)
		carrier := fs.String("carrier", "", "Path to the carrier image file")
		secret := fs.String("secret", "", "Path to the secret image to embed")
		output := fs.String("output", "", "Path to save the output image with embedded secret")
		fs.Parse(os.Args[2:])
		if *carrier == "" || *secret == "" || *output == "" {
			fs.Usage()
			os.Exit(2)
		}
		exitOnError(runEmbed(*carrier, *secret, *output))

	case "extract":
		fs := flag.NewFlagSet("extract", flag.ExitOnError)
		image := fs.String("image", "", "Path to the image with embedded secret")
		output := fs.String("output", "", "Path to save the extracted secret")
		fs.Parse(os.Args[2:])
		if *image == "" || *output == "" {
			fs.Usage()
			os.Exit(2)
		}
		exitOnError(runExtract(*image, *output))

	case "serve":
		runServe()

	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  imagestego embed --carrier PATH --secret PATH --output PATH")
	fmt.Println("  imagestego extract --image PATH --output PATH")
	fmt.Println("  imagestego serve")
}

func exitOnError(err error) {
	if err == nil {
		return
	}

	var tooLarge *stego.SecretTooLargeError
	if errors.As(err, &tooLarge) {
		fmt.Printf("Error! Secret too large to hide in image (%d elements needed, carrier has %d). "+
			"Try again with a smaller secret or a larger carrier.\n", tooLarge.Required, tooLarge.Available)
		os.Exit(1)
	}

	fmt.Printf("Error! %v\n", err)
	os.Exit(1)
}

func runEmbed(carrierPath, secretPath, outputPath string) error {
	if err := imaging.ValidateFileType(carrierPath, imaging.RoleCarrier); err != nil {
		return err
	}
	if err := imaging.ValidateFileType(secretPath, imaging.RoleSecret); err != nil {
		return err
	}
	// The output carries the bit plane, so it must encode losslessly.
	if err := imaging.ValidateLosslessFileType(outputPath, imaging.RoleOutput); err != nil {
		return err
	}

	imageCodec := imaging.NewImageCodec()

	carrier, err := imageCodec.DecodeFile(carrierPath)
	if err != nil {
		return err
	}
	secret, err := imageCodec.DecodeFile(secretPath)
	if err != nil {
		return err
	}

	fmt.Printf("Embedding secret '%s' into carrier '%s' and saving to '%s'.\n",
		secretPath, carrierPath, outputPath)

	stegoImage, err := stego.Embed(carrier, secret)
	if err != nil {
		return err
	}

	if err := imageCodec.EncodeFile(stegoImage, outputPath); err != nil {
		return err
	}

	fmt.Printf("Embedded %d secret bytes (PSNR %.2f dB).\n",
		len(secret.Data), imaging.CalculatePSNR(carrier.Data, stegoImage.Data))
	return nil
}

func runExtract(imagePath, outputPath string) error {
	// Anything still holding an intact bit plane must be lossless.
	if err := imaging.ValidateLosslessFileType(imagePath, imaging.RoleImage); err != nil {
		return err
	}
	if err := imaging.ValidateFileType(outputPath, imaging.RoleOutput); err != nil {
		return err
	}

	imageCodec := imaging.NewImageCodec()

	fmt.Printf("Extracting secret from image '%s' and saving to '%s'.\n", imagePath, outputPath)

	img, err := imageCodec.DecodeFile(imagePath)
	if err != nil {
		return err
	}

	secret, err := stego.Extract(img)
	if err != nil {
		if errors.Is(err, stego.ErrNoSecret) {
			return fmt.Errorf("there does not seem to be any secret hiding in '%s'. Terminating", imagePath)
		}
		return err
	}

	if err := imageCodec.EncodeFile(secret, outputPath); err != nil {
		return err
	}

	fmt.Printf("Recovered a %dx%dx%d secret.\n", secret.Height, secret.Width, secret.Channels)
	return nil
}

func runServe() {
	router := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"http://localhost:3000"}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Requested-With"}
	config.ExposeHeaders = []string{"X-Stego-PSNR", "X-Stego-Method", "Content-Disposition"}
	config.AllowCredentials = true
	router.Use(cors.New(config))

	stegoHandler := handlers.NewStegoHandler()

	// API Routes
	api := router.Group("/api/v1")
	{
		api.GET("/health", stegoHandler.HealthCheck)

		stegoGroup := api.Group("/stego")
		{
			stegoGroup.POST("/embed", stegoHandler.EmbedSecret)
			stegoGroup.POST("/extract", stegoHandler.ExtractSecret)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Printf("API endpoints:")
	log.Printf("  POST /api/v1/stego/embed   - Hide a secret image inside a carrier (returns stego PNG)")
	log.Printf("  POST /api/v1/stego/extract - Recover a hidden secret image (returns secret PNG)")
	log.Printf("  GET  /api/v1/health        - Health check")

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
