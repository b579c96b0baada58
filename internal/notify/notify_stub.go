//go:build !linux && !darwin && !windows

package notify

func platformNotify(string, string, Options) error {
	return nil
}
