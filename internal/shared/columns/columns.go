// Package columns はスクリーナーの位置ベースの行を名前付きのフィールドに対応付けます。
//
// スキャン結果の各行は次の形で返されます。
//
//	{"s": "FX_IDC:USDTRY", "d": ["USDTRY", "U.S. Dollar / Turkish Lira", 34.2, ...]}
//
// dの順序はリクエストで送ったカラム一覧に従います。Schemaはそのカラム一覧、Rowはデコードした1行です。
package columns

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// Schema はスキャナーに要求するカラム名の順序付き一覧です。
type Schema []string

// Index はスキーマ内のnameの位置を返します。存在しない場合は-1です。
func (s Schema) Index(name string) int {
	return slices.Index(s, name)
}

// MustIndex は呼び出し側が自分で宣言したカラム用のIndexです。
// nameがない場合はpanicし、パッケージレベルのスキーマの誤記を初期化時に検出します。
func (s Schema) MustIndex(name string) int {
	i := s.Index(name)
	if i < 0 {
		panic(fmt.Sprintf("columns: %q not in schema %v", name, []string(s)))
	}
	return i
}

// Row はスキャン結果の1行です。
type Row struct {
	Symbol string `json:"s"`
	Values []any  `json:"d"`
}

// UnmarshalJSON は数値をfloat64、nullをnilとして保持します。
func (r *Row) UnmarshalJSON(b []byte) error {
	var raw struct {
		S string            `json:"s"`
		D []json.RawMessage `json:"d"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	vals := make([]any, len(raw.D))
	for i, m := range raw.D {
		if len(m) == 0 || bytes.Equal(m, []byte("null")) {
			continue
		}
		if err := json.Unmarshal(m, &vals[i]); err != nil {
			return fmt.Errorf("column %d: %w", i, err)
		}
	}
	r.Symbol = raw.S
	r.Values = vals
	return nil
}

// Value はd[i]を返します。範囲外はエラーではなく値なしとして扱います。
// スキャナーは末尾の空カラムを省略することがあります。
func (r Row) Value(i int) (any, bool) {
	if i < 0 || i >= len(r.Values) {
		return nil, false
	}
	return r.Values[i], true
}

// Number はd[i]がJSONの数値であればそれを返し、それ以外はnilを返します。
func (r Row) Number(i int) *float64 {
	v, _ := r.Value(i)
	f, ok := v.(float64)
	if !ok {
		return nil
	}
	return &f
}

// Text はd[i]がJSONの文字列であればそれを返し、それ以外はnilを返します。
func (r Row) Text(i int) *string {
	v, _ := r.Value(i)
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}
