package volume

import "strings"

// networkFileSystems lists filesystem type names that indicate a remote
// mount. Membership short-circuits enrichment: probing native descriptors on
// a remote mount can block indefinitely when the server is gone.
var networkFileSystems = map[string]bool{
	"nfs":        true,
	"nfs4":       true,
	"cifs":       true,
	"smb":        true,
	"smbfs":      true,
	"afpfs":      true,
	"ncpfs":      true,
	"afs":        true,
	"davfs":      true,
	"webdav":     true,
	"fuse.sshfs": true,
	"sshfs":      true,
	"glusterfs":  true,
	"9p":         true,
}

// isNetworkFileSystem reports whether fstype names a remote filesystem.
func isNetworkFileSystem(fstype string) bool {
	return networkFileSystems[strings.ToLower(fstype)]
}

// remoteHost extracts the host part of a remote mount source. Supported
// forms, tried in order:
//
//	scheme://host/share   (davfs, webdav)
//	//host/share          (cifs, smb; an optional user@ prefix is dropped)
//	host:/export          (nfs)
func remoteHost(source string) string {
	if i := strings.Index(source, "://"); i >= 0 {
		rest := source[i+3:]
		if j := strings.IndexByte(rest, '/'); j >= 0 {
			rest = rest[:j]
		}
		return stripUserInfo(rest)
	}

	if strings.HasPrefix(source, "//") {
		rest := source[2:]
		if j := strings.IndexByte(rest, '/'); j >= 0 {
			rest = rest[:j]
		}
		return stripUserInfo(rest)
	}

	if i := strings.IndexByte(source, ':'); i > 0 {
		return source[:i]
	}

	return ""
}

// stripUserInfo drops a user@ (or user:pass@) prefix from a host part.
func stripUserInfo(host string) string {
	if i := strings.LastIndexByte(host, '@'); i >= 0 {
		return host[i+1:]
	}
	return host
}

// remoteShare extracts the exported share or path part of a remote mount
// source, complementing remoteHost.
func remoteShare(source string) string {
	if i := strings.Index(source, "://"); i >= 0 {
		rest := source[i+3:]
		if j := strings.IndexByte(rest, '/'); j >= 0 {
			return rest[j+1:]
		}
		return ""
	}

	if strings.HasPrefix(source, "//") {
		rest := source[2:]
		if j := strings.IndexByte(rest, '/'); j >= 0 {
			return rest[j+1:]
		}
		return ""
	}

	if i := strings.IndexByte(source, ':'); i >= 0 && i+1 < len(source) {
		return source[i+1:]
	}

	return ""
}

// remoteURI derives a canonical URI for a remote mount from its type and
// source, or "" when the source has no recognizable host.
func remoteURI(fstype, source string) string {
	if strings.Contains(source, "://") {
		return source
	}

	host := remoteHost(source)
	if host == "" {
		return ""
	}

	scheme := strings.ToLower(fstype)
	switch scheme {
	case "cifs", "smbfs", "smb":
		scheme = "smb"
	case "nfs4":
		scheme = "nfs"
	}

	share := remoteShare(source)
	if share == "" {
		return scheme + "://" + host
	}
	return scheme + "://" + host + "/" + strings.TrimPrefix(share, "/")
}
