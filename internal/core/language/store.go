// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package language

import "context"

// Repository defines the data access contract for the language catalogue.
type Repository interface {
	ListLanguages(context context.Context) ([]*Language, error)
	GetLanguageByCode(context context.Context, code string) (*Language, error)
}
