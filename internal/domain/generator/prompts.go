package generator

import (
	"fmt"
	"strings"
)

const langTurkish = "tr"

// Options selects and parameterises a system prompt.
type Options struct {
	Task    Task
	Lang    string
	Tone    string
	Length  string
	Persona string
}

var turkishTemplates = map[Task]string{
	TaskSummary: `Sen deneyimli bir içerik editörüsün. Sana verilen içeriği Türkçe olarak özetle.
Ton: %s. Uzunluk: %s.

Yanıtını tam olarak aşağıdaki bölümlerle ver:

## Ana Noktalar
- İçerikteki en önemli 3 ile 7 arası noktayı madde işaretleriyle yaz.

## Özet
İçeriğin akıcı, paragraf halinde bir özetini yaz.

Kurallar:
- Yalnızca verilen içerikteki bilgilere dayan, bilgi uydurma.
- HTML veya kod bloğu kullanma.`,

	TaskYouTube: `Sen bir YouTube içerik stratejisti ve senaristisin. Sana verilen içerikten Türkçe bir YouTube videosu hazırla.
Ton: %s. Video uzunluğu: %s.

Yanıtını tam olarak aşağıdaki bölümlerle ver:

## Başlık Önerileri
- 60 karakteri geçmeyen, merak uyandıran 3 başlık yaz.

## Giriş (Hook)
İzleyiciyi ilk 15 saniyede yakalayacak açılış cümlelerini yaz.

## Senaryo
Bölümlere ayrılmış, zaman damgalı konuşma metnini yaz.

## Video Açıklaması
Anahtar kelimeleri doğal biçimde içeren 2-3 paragraflık açıklama yaz.

## Etiketler
Virgülle ayrılmış 10-15 etiket yaz.`,

	TaskShorts: `Sen kısa dikey video (YouTube Shorts, Instagram Reels, TikTok) uzmanısın. Sana verilen içerikten Türkçe bir kısa video senaryosu hazırla.
Ton: %s. Süre: %s (en fazla 60 saniye).

Yanıtını tam olarak aşağıdaki bölümlerle ver:

## Kanca
İlk 3 saniyede izleyiciyi durduracak tek cümle yaz.

## Sahneler
Numaralı sahneler halinde her sahne için görüntüyü ve seslendirme metnini yaz.

## Açıklama
Videonun altına yazılacak kısa açıklamayı yaz.

## Hashtagler
5-10 hashtag yaz.`,

	TaskSocial: `Sen bir sosyal medya yöneticisisin. Sana verilen içerik için Türkçe sosyal medya gönderileri hazırla.
Ton: %s. Uzunluk: %s.

Yanıtını tam olarak aşağıdaki bölümlerle ver:

## Twitter/X
280 karakteri geçmeyen bir gönderi yaz.

## LinkedIn
Profesyonel bir kitleye yönelik, 2-3 paragraflık bir gönderi yaz.

## Instagram
Emoji ve hashtag içeren bir gönderi metni yaz.

## Facebook
Etkileşimi artıracak bir soruyla biten bir gönderi yaz.`,

	TaskSEO: `Sen bir SEO uzmanı ve içerik yazarısın. Sana verilen içerikten Türkçe, arama motoru uyumlu bir blog yazısı hazırla.
Ton: %s. Uzunluk: %s.

Yanıtını tam olarak aşağıdaki bölümlerle ver:

## Meta Başlık
60 karakteri geçmeyen bir başlık yaz.

## Meta Açıklama
160 karakteri geçmeyen bir açıklama yaz.

## Başlık Yapısı
Bir H1 ve altındaki H2 başlıklarını liste halinde yaz.

## Makale
Başlık yapısını izleyen, okunabilir bir makale yaz.

## Anahtar Kelimeler
Virgülle ayrılmış 5-10 anahtar kelime yaz.`,
}

var turkishInstructions = map[Task]string{
	TaskSummary: "Aşağıdaki içeriği özetle:",
	TaskYouTube: "Aşağıdaki içerikten bir YouTube videosu hazırla:",
	TaskShorts:  "Aşağıdaki içerikten bir kısa video senaryosu hazırla:",
	TaskSocial:  "Aşağıdaki içerik için sosyal medya gönderileri hazırla:",
	TaskSEO:     "Aşağıdaki içerikten SEO uyumlu bir blog yazısı hazırla:",
}

var englishDeliverables = map[Task]string{
	TaskSummary: "a summary with key points followed by a short prose overview",
	TaskYouTube: "a YouTube video package with titles, a hook, a script, a description and tags",
	TaskShorts:  "a short vertical video script with a hook, scenes, a caption and hashtags",
	TaskSocial:  "social media posts for Twitter/X, LinkedIn, Instagram and Facebook",
	TaskSEO:     "an SEO blog post with meta title, meta description, H1/H2 outline, article and keywords",
}

var englishInstructions = map[Task]string{
	TaskSummary: "Summarize the following content:",
	TaskYouTube: "Create a YouTube video from the following content:",
	TaskShorts:  "Create a short video script from the following content:",
	TaskSocial:  "Create social media posts for the following content:",
	TaskSEO:     "Create an SEO friendly blog post from the following content:",
}

// BuildSystemPrompt renders the system message for a task.
func BuildSystemPrompt(opts Options) string {
	persona := strings.TrimSpace(opts.Persona)
	if normalizeLang(opts.Lang) != langTurkish {
		prompt := fmt.Sprintf("You are an expert content creator. Write %s in the language with code %q, using a %s tone and %s length.",
			englishDeliverables[opts.Task], normalizeLang(opts.Lang), opts.Tone, opts.Length)
		if persona != "" {
			prompt += "\nTarget audience: " + persona
		}
		return prompt
	}
	template, ok := turkishTemplates[opts.Task]
	if !ok {
		template = turkishTemplates[TaskSummary]
	}
	prompt := fmt.Sprintf(template, opts.Tone, opts.Length)
	if persona != "" {
		prompt += "\n\nHedef kitle: " + persona
	}
	return prompt
}

// BuildUserPrompt wraps content with the task-specific instruction phrase.
func BuildUserPrompt(task Task, lang, content string) string {
	instructions := englishInstructions
	if normalizeLang(lang) == langTurkish {
		instructions = turkishInstructions
	}
	phrase, ok := instructions[task]
	if !ok {
		phrase = instructions[TaskSummary]
	}
	return phrase + "\n\n" + content
}

func normalizeLang(lang string) string {
	return strings.ToLower(strings.TrimSpace(lang))
}
