package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/browser"

	"github.com/rileyhilliard/bitmeter/internal/config"
	"github.com/rileyhilliard/bitmeter/internal/errors"
	"github.com/rileyhilliard/bitmeter/internal/ui"
)

// Global setting the capture service reads its web server port from.
const (
	webPortSetting = "web.port"
	defaultWebPort = "2605"
)

// openBrowser launches the system browser. Replaced in tests.
var openBrowser = browser.OpenURL

func webCommand(ctx context.Context, out io.Writer, opts config.LoadOptions, open bool) error {
	sess, err := openSession(ctx, opts)
	if err != nil {
		return err
	}
	defer sess.Close()

	raw, err := sess.samples.GlobalSetting(ctx, webPortSetting, defaultWebPort)
	if err != nil {
		return err
	}
	url, err := webURL(raw)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, url)
	if !open {
		return nil
	}
	if err := openBrowser(url); err != nil {
		return errors.WrapWithCode(err, errors.ErrDisplay,
			"Failed to open a browser",
			"Open "+url+" manually")
	}
	fmt.Fprintln(out, ui.Muted("Opened in your browser."))
	return nil
}

// webURL builds the local web interface address from a stored port.
func webURL(rawPort string) (string, error) {
	port, err := strconv.Atoi(strings.TrimSpace(rawPort))
	if err != nil || port < 1 || port > 65535 {
		return "", errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid %s setting: %q", webPortSetting, rawPort),
			"Fix the port in the BitMeter capture service settings")
	}
	return fmt.Sprintf("http://localhost:%d", port), nil
}
