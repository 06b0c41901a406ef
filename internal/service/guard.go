package service

// RequireSelf fails with Forbidden unless the viewer owns the resource.
func RequireSelf(ownerID, viewerID uint) error {
	if ownerID == 0 || ownerID != viewerID {
		return newError(KindForbidden, "無權限存取此資源！")
	}
	return nil
}

// RequireExists fails with NotFound when a lookup came back empty.
func RequireExists[T any](entity *T, msg string) error {
	if entity == nil {
		return newError(KindNotFound, msg)
	}
	return nil
}
