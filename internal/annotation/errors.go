package annotation

import "errors"

// ErrStoreNotObject is returned when the annotation store is valid JSON but
// not an object keyed by post id.
var ErrStoreNotObject = errors.New("annotations json must be an object keyed by postId")
