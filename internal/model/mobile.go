package model

import "fmt"

// APKSource is the location of an APK to install on an Android sandbox.
type APKSource struct {
	// Path is an APK file already present on the device.
	Path string
	// URL is a remote APK the device will download before installing it.
	URL string
	// Headers are sent when downloading URL.
	Headers map[string]string
}

// LocalAPK returns an APK source for a file on the device.
func LocalAPK(path string) APKSource { return APKSource{Path: path} }

// RemoteAPK returns an APK source that will be downloaded by the device.
func RemoteAPK(url string, headers map[string]string) APKSource {
	return APKSource{URL: url, Headers: headers}
}

// IsRemote returns true when the APK needs to be downloaded.
func (s APKSource) IsRemote() bool { return s.URL != "" }

// Validate checks the source has exactly one location.
func (s APKSource) Validate() error {
	if (s.Path == "") == (s.URL == "") {
		return fmt.Errorf("apk source must have a path or a url: %w", ErrNotValid)
	}
	return nil
}

// GPSLocation is a latitude/longitude pair.
type GPSLocation struct {
	Latitude  float64
	Longitude float64
}

// Validate checks the coordinates are in range.
func (g GPSLocation) Validate() error {
	if g.Latitude < -90 || g.Latitude > 90 {
		return fmt.Errorf("latitude must be between -90 and 90, got %f: %w", g.Latitude, ErrNotValid)
	}
	if g.Longitude < -180 || g.Longitude > 180 {
		return fmt.Errorf("longitude must be between -180 and 180, got %f: %w", g.Longitude, ErrNotValid)
	}
	return nil
}
