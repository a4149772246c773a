package gbtword

// CDW is a Calibration Data Word (ID 0xF8). The current protocol makes no
// semantic use of its payload beyond sanity-checking its ID (spec.md §7
// "E8x — CDW sanity"), so it is kept as an untyped wrapper for forward
// compatibility rather than decoding fields nothing consumes yet.
type CDW struct{ Raw10 }

func AsCDW(w Raw10) CDW { return CDW{w} }
