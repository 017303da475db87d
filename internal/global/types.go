package global

type CtxKey string
