package cache

import "github.com/nightsky-studio/zzzcalc/internal/apierr"

func errNotRegistered(key string) error {
	return apierr.Newf(apierr.MissingKey, "cache: key %q is not registered", key)
}

func errNotFoundOnDisk(path string, cause error) error {
	return apierr.Wrap(apierr.IoError, cause, "cache: no definition file at "+path)
}

func errParseFailed(key string, cause error) error {
	return apierr.Wrap(apierr.ParseError, cause, "cache: loader rejected definition for key "+key)
}

func errFolderNotRegistered(folder string) error {
	return apierr.Newf(apierr.MissingKey, "cache: folder %q has no registered loader", folder)
}
