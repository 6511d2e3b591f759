package session

import (
	"context"

	"texturetool/internal/update"
)

// CheckForUpdate queries manifestURL and logs the outcome.
func (s *Session) CheckForUpdate(ctx context.Context, checker *update.Checker, manifestURL, current string) (update.Result, error) {
	if checker == nil {
		checker = update.NewChecker()
	}
	s.renderer.Logf("[INFO] %s: Checking KittmasterRepo repository for an update.", s.opts.Now().Format("15:04:05"))

	res, err := checker.Check(ctx, manifestURL, current)
	if err != nil {
		s.renderer.Logf("[ERROR] Update check failed: %v", err)
		return res, err
	}

	if res.Available {
		s.renderer.Logf("[INFO] New version available: %s", res.Manifest.LatestVersion)
		if dl, err := res.DownloadURL(); err == nil {
			s.renderer.Logf("[INFO] Sanitized download URL: %s", dl)
		} else {
			s.renderer.Logf("[ERROR] Could not parse download URL '%s': %v", res.Manifest.UpdatePackageURL, err)
		}
	} else {
		s.renderer.Log("[INFO] Application is up to date.")
	}
	return res, nil
}
