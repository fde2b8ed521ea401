// Package pricing は割引後の単価・明細小計・カート集計を計算する。
// 丸めはすべて小数2桁の四捨五入（half-up）。
package pricing

import "github.com/shopspring/decimal"

var one = decimal.NewFromInt(1)

// 小数2桁に四捨五入。入力は非負なので Round の half-away-from-zero は half-up と同じ。
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// 割引後の単価。丸めは単価で1回だけ。
func FinalUnitPrice(price, discount decimal.Decimal) decimal.Decimal {
	return Round2(price.Mul(one.Sub(discount)))
}

// 明細小計（単価 × 数量）。再丸めしない。
func LineSubtotal(unitPrice decimal.Decimal, quantity int64) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(quantity))
}

// 集計に使う明細1行分
type Line struct {
	Price    decimal.Decimal
	Discount decimal.Decimal
	Quantity int64
}

type Summary struct {
	TotalItems    int64
	UniqueItems   int
	Subtotal      decimal.Decimal
	TotalDiscount decimal.Decimal
	Total         decimal.Decimal
}

// カート集計。
// subtotal と totalDiscount をそれぞれ丸めてから total = subtotal - totalDiscount を出す。
// 丸め済み同士の差なので total も小数2桁に収まり、足し引きが常に一致する。
func Summarize(lines []Line) Summary {
	s := Summary{
		UniqueItems:   len(lines),
		Subtotal:      decimal.Zero,
		TotalDiscount: decimal.Zero,
	}

	subtotal := decimal.Zero
	discount := decimal.Zero
	for _, l := range lines {
		qty := decimal.NewFromInt(l.Quantity)
		s.TotalItems += l.Quantity
		subtotal = subtotal.Add(l.Price.Mul(qty))
		discount = discount.Add(l.Price.Mul(l.Discount).Mul(qty))
	}

	s.Subtotal = Round2(subtotal)
	s.TotalDiscount = Round2(discount)
	s.Total = Round2(s.Subtotal.Sub(s.TotalDiscount))
	return s
}

// 注文合計 = round2(Σ 割引後単価 × 数量)
func OrderTotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(LineSubtotal(FinalUnitPrice(l.Price, l.Discount), l.Quantity))
	}
	return Round2(total)
}
