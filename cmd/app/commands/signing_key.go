package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"

	"github.com/sundacoder/ZedID/internal/identity/service"
)

// signingKeySize is the length of generated token signing secrets in bytes.
const signingKeySize = 32

// RunCreateSigningKey generates a random token signing secret and prints it as
// environment variables. With kmsKeyURI the secret is wrapped by the KMS keeper
// and the ciphertext is printed together with JWT_SECRET_KMS_KEY_URI.
func RunCreateSigningKey(
	ctx context.Context,
	kmsService service.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	kmsKeyURI string,
) error {
	secret := make([]byte, signingKeySize)
	if _, err := rand.Read(secret); err != nil {
		return fmt.Errorf("failed to generate signing key: %w", err)
	}
	defer func() {
		for i := range secret {
			secret[i] = 0
		}
	}()

	if kmsKeyURI == "" {
		logger.WarnContext(ctx, "signing key printed in plaintext, consider --kms-key-uri")
		_, _ = fmt.Fprintln(writer, "# Token signing key")
		_, _ = fmt.Fprintln(writer, "# Copy this environment variable to your .env file or secrets manager")
		_, _ = fmt.Fprintf(writer, "ZEDID_JWT_SECRET=\"%s\"\n", base64.StdEncoding.EncodeToString(secret))
		return nil
	}

	ciphertext, err := service.WrapSigningSecret(ctx, kmsService, kmsKeyURI, secret)
	if err != nil {
		return fmt.Errorf("failed to wrap signing key: %w", err)
	}

	_, _ = fmt.Fprintln(writer, "# Token signing key (KMS mode)")
	_, _ = fmt.Fprintln(writer, "# Copy these environment variables to your .env file or secrets manager")
	_, _ = fmt.Fprintf(writer, "JWT_SECRET_KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	_, _ = fmt.Fprintf(writer, "ZEDID_JWT_SECRET=\"%s\"\n", ciphertext)
	return nil
}
