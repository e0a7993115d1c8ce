package revelation

import "fmt"

// RevelationPrompt builds the text-generation prompt for the daily message.
// The theme must already be resolved (never the sentinel).
func RevelationPrompt(name, theme string) string {
	return fmt.Sprintf(
		"Escreva uma mensagem devocional inspiradora e personalizada para %s, "+
			"sobre o tema \"%s\". Fale diretamente com a pessoa, pelo nome, em "+
			"segunda pessoa. Não use saudações como \"olá\" ou \"bom dia\" e não "+
			"se despeça no final; comece direto na mensagem. Use um tom "+
			"acolhedor, esperançoso e íntimo, como um conselho de alguém que "+
			"conhece bem a pessoa. A mensagem deve durar cerca de 1 minuto "+
			"quando lida em voz alta (por volta de 150 palavras). Escreva em "+
			"português do Brasil, em prosa corrida, sem títulos nem listas.",
		name, theme)
}

// PrayerPrompt builds the text-generation prompt for the complementary
// prayer, referencing the day's existing theme and name.
func PrayerPrompt(name, theme string) string {
	return fmt.Sprintf(
		"Escreva uma oração curta e pessoal para %s, ligada ao tema \"%s\" da "+
			"mensagem que a pessoa acabou de receber. A oração deve ser em "+
			"primeira pessoa, como se %s estivesse orando, em português do "+
			"Brasil. Não use saudações nem explicações; apenas o texto da "+
			"oração, com cerca de 30 segundos quando lida em voz alta.",
		name, theme, name)
}
