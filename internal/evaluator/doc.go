// Package evaluator содержит защищённые вычислители лабораторной работы:
// проверку сырых входов и две формулы с особыми точками.
//
// Все функции чистые и синхронные, общего состояния нет, поэтому их можно
// вызывать из любого числа горутин. Ошибки не бросаются, а возвращаются
// как Result с классом Kind: сначала проверяются количество и конечность
// входов, затем защитные условия формулы.
package evaluator
