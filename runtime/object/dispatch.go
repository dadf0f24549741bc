package object

import "go.uber.org/zap"

// resolve walks the dispatch order front-to-back and returns the first
// public method table entry matching name. Synthesized accessors take part
// like any declared method, so an overriding accessor or method in a
// subtype shadows an ancestor's.
func resolve(t *TypeMetaobject, name string) (*MethodDescriptor, bool) {
	for _, level := range t.mro {
		if md, ok := level.publicMethods[name]; ok {
			return md, true
		}
	}
	return nil, false
}

// Call dispatches a public method on the instance. A miss anywhere in the
// dispatch order is a NoSuchMethod error.
func Call(in *Instance, name string, args ...any) (any, error) {
	md, ok := resolve(in.typ, name)
	if !ok {
		return nil, NewNoSuchMethodError(in.typ.name, name)
	}
	in.typ.log.Debug("dispatch",
		zap.String("type", in.typ.name),
		zap.String("method", name),
		zap.String("declared_by", md.DeclaredBy))
	return md.Fn(in, args...)
}

// CallPrivate dispatches a private method of one specific declaring type.
// Private methods are never found by the public dispatch-order search: the
// caller must name the declaring type, and must either be that type or
// hold a trust grant it issued. Grants do not extend to subtypes of the
// trusted type.
func CallPrivate(in *Instance, caller, declaring *TypeMetaobject, name string, args ...any) (any, error) {
	if !declaring.Trusts(caller) {
		callerName := ""
		if caller != nil {
			callerName = caller.name
		}
		return nil, NewTrustViolationError(declaring.name, callerName, name)
	}
	md, ok := declaring.privateMethods[name]
	if !ok {
		return nil, NewNoSuchMethodError(declaring.name, name)
	}
	declaring.log.Debug("private dispatch",
		zap.String("declaring", declaring.name),
		zap.String("method", name))
	return md.Fn(in, args...)
}
