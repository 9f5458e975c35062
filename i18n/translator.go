package i18n

import "fmt"

// Translator retrieves localized messages for issue codes. params carries
// optional structured data to embed in the message (for example, "min" or
// "expected").
type Translator interface {
	Message(code string, params map[string]any) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, params map[string]any) string {
	p := func(key string) (any, bool) {
		if params == nil {
			return nil, false
		}
		v, ok := params[key]
		return v, ok
	}
	if t.lang == "ja" {
		switch code {
		case "required":
			return "必須フィールドです"
		case "invalid_type":
			if want, ok := p("expected"); ok {
				return fmt.Sprintf("型が不正です (期待: %v)", want)
			}
			return "型が不正です"
		case "invalid_enum":
			return "許可された値ではありません"
		case "invalid_const":
			return "固定値と一致しません"
		case "too_short":
			if min, ok := p("min"); ok {
				return fmt.Sprintf("%v 文字以上で入力してください", min)
			}
			return "短すぎます"
		case "too_long":
			if max, ok := p("max"); ok {
				return fmt.Sprintf("%v 文字以下で入力してください", max)
			}
			return "長すぎます"
		case "pattern":
			return "形式が一致しません"
		case "invalid_format":
			if f, ok := p("format"); ok {
				return fmt.Sprintf("%v 形式ではありません", f)
			}
			return "形式が不正です"
		case "too_small":
			if min, ok := p("min"); ok {
				return fmt.Sprintf("%v 以上にしてください", min)
			}
			return "小さすぎます"
		case "too_big":
			if max, ok := p("max"); ok {
				return fmt.Sprintf("%v 以下にしてください", max)
			}
			return "大きすぎます"
		case "not_multiple_of":
			return "倍数条件を満たしません"
		case "not_integer":
			return "整数ではありません"
		case "too_few_items":
			return "要素数が少なすぎます"
		case "too_many_items":
			return "要素数が多すぎます"
		case "not_unique":
			return "要素が重複しています"
		case "contains_mismatch":
			return "条件を満たす要素がありません"
		case "tuple_length":
			return "タプル長が一致しません"
		case "too_few_properties":
			return "プロパティ数が少なすぎます"
		case "too_many_properties":
			return "プロパティ数が多すぎます"
		case "unknown_key":
			return "未知のキーです"
		case "invalid_key":
			return "キー名が不正です"
		case "pattern_property":
			return "パターンに一致するプロパティが制約を満たしません"
		case "additional_property":
			return "追加プロパティが制約を満たしません"
		case "dependent_required":
			return "依存プロパティが不足しています"
		case "dependent_schema":
			return "依存スキーマを満たしません"
		case "all_of":
			return "すべての条件を満たしません"
		case "any_of":
			return "いずれの条件も満たしません"
		case "one_of":
			return "ちょうど一つの条件に一致しません"
		case "not":
			return "禁止された形式に一致しています"
		case "condition":
			return "条件付き制約を満たしません"
		case "required_if":
			return "条件により必須です"
		case "context_rule":
			return "コンテキスト条件を満たしません"
		case "content_encoding":
			return "コンテンツのエンコーディングが不正です"
		case "content_media_type":
			return "コンテンツのメディアタイプが不正です"
		case "ref_schema":
			return "参照スキーマに一致しません"
		case "custom":
			return "カスタム検証に失敗しました"
		case "parse_error":
			return "解析エラー"
		}
		return code
	}
	switch code {
	case "required":
		return "field is required"
	case "invalid_type":
		if want, ok := p("expected"); ok {
			return fmt.Sprintf("invalid type, expected %v", want)
		}
		return "invalid type"
	case "invalid_enum":
		return "value is not one of the allowed values"
	case "invalid_const":
		return "value does not match the expected constant"
	case "too_short":
		if min, ok := p("min"); ok {
			return fmt.Sprintf("must be at least %v characters", min)
		}
		return "too short"
	case "too_long":
		if max, ok := p("max"); ok {
			return fmt.Sprintf("must be at most %v characters", max)
		}
		return "too long"
	case "pattern":
		return "value does not match the required pattern"
	case "invalid_format":
		if f, ok := p("format"); ok {
			return fmt.Sprintf("not a valid %v", f)
		}
		return "invalid format"
	case "too_small":
		if min, ok := p("min"); ok {
			return fmt.Sprintf("must be at least %v", min)
		}
		return "too small"
	case "too_big":
		if max, ok := p("max"); ok {
			return fmt.Sprintf("must be at most %v", max)
		}
		return "too big"
	case "not_multiple_of":
		if d, ok := p("divisor"); ok {
			return fmt.Sprintf("must be a multiple of %v", d)
		}
		return "not a multiple"
	case "not_integer":
		return "must be an integer"
	case "too_few_items":
		if min, ok := p("min"); ok {
			return fmt.Sprintf("must contain at least %v items", min)
		}
		return "too few items"
	case "too_many_items":
		if max, ok := p("max"); ok {
			return fmt.Sprintf("must contain at most %v items", max)
		}
		return "too many items"
	case "not_unique":
		return "items must be unique"
	case "contains_mismatch":
		return "no item matches the contains schema"
	case "tuple_length":
		if want, ok := p("expected"); ok {
			return fmt.Sprintf("must contain exactly %v items", want)
		}
		return "wrong tuple length"
	case "too_few_properties":
		if min, ok := p("min"); ok {
			return fmt.Sprintf("must have at least %v properties", min)
		}
		return "too few properties"
	case "too_many_properties":
		if max, ok := p("max"); ok {
			return fmt.Sprintf("must have at most %v properties", max)
		}
		return "too many properties"
	case "unknown_key":
		if k, ok := p("key"); ok {
			return fmt.Sprintf("unknown key %v", k)
		}
		return "unknown key"
	case "invalid_key":
		if k, ok := p("key"); ok {
			return fmt.Sprintf("invalid property name %v", k)
		}
		return "invalid property name"
	case "pattern_property":
		return "a property matching a pattern does not satisfy its schema"
	case "additional_property":
		return "an additional property does not satisfy its schema"
	case "dependent_required":
		if m, ok := p("missing"); ok {
			return fmt.Sprintf("missing dependent properties: %v", m)
		}
		return "missing dependent properties"
	case "dependent_schema":
		if prop, ok := p("property"); ok {
			return fmt.Sprintf("dependent schema for %v not satisfied", prop)
		}
		return "dependent schema not satisfied"
	case "all_of":
		return "does not satisfy all branches"
	case "any_of":
		return "does not satisfy any branch"
	case "one_of":
		return "must satisfy exactly one branch"
	case "not":
		return "matches a forbidden schema"
	case "condition":
		return "conditional constraint not satisfied"
	case "required_if":
		return "field is required by a sibling condition"
	case "context_rule":
		return "context condition not satisfied"
	case "content_encoding":
		if enc, ok := p("encoding"); ok {
			return fmt.Sprintf("content is not valid %v", enc)
		}
		return "invalid content encoding"
	case "content_media_type":
		if mt, ok := p("mediaType"); ok {
			return fmt.Sprintf("content is not valid %v", mt)
		}
		return "invalid content media type"
	case "ref_schema":
		return "does not match the referenced schema"
	case "custom":
		return "custom check failed"
	case "parse_error":
		return "parse error"
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, params map[string]any) string { return currentTranslator.Message(code, params) }
