package generator

var fallbacks = map[Task]map[string]string{
	TaskSummary: {
		"tr": `## Ana Noktalar
- İçerik şu anda otomatik olarak özetlenemedi.
- Metni birkaç dakika sonra yeniden göndermeyi deneyebilirsiniz.
- Kısa ve net paragraflar daha iyi özet üretir.

## Özet
Yapay zeka servisine şu anda ulaşılamıyor. Bu nedenle içeriğiniz için otomatik bir özet oluşturulamadı. Lütfen daha sonra tekrar deneyin.`,
		"en": `## Key Points
- The content could not be summarized automatically right now.
- You can try sending the text again in a few minutes.
- Short, focused paragraphs produce better summaries.

## Summary
The AI service is currently unavailable, so no automatic summary could be created for your content. Please try again later.`,
	},
	TaskYouTube: {
		"tr": `## Başlık Önerileri
- Bu Konuyu Herkes Yanlış Biliyor
- 5 Dakikada Öğrenin
- Kimsenin Anlatmadığı Detaylar

## Giriş (Hook)
Bu videoda konunun en çok merak edilen yanlarını birlikte inceliyoruz.

## Senaryo
Yapay zeka servisine şu anda ulaşılamadığı için senaryo oluşturulamadı. Lütfen daha sonra tekrar deneyin.

## Video Açıklaması
Videoyu beğenmeyi ve kanala abone olmayı unutmayın.

## Etiketler
rehber, bilgi, eğitim, türkçe`,
		"en": `## Title Ideas
- Everyone Gets This Wrong
- Learn It in 5 Minutes
- The Details Nobody Talks About

## Hook
In this video we look at the most asked questions about the topic.

## Script
The AI service is currently unavailable, so no script could be generated. Please try again later.

## Video Description
Remember to like the video and subscribe to the channel.

## Tags
guide, tutorial, education`,
	},
	TaskShorts: {
		"tr": `## Kanca
Bunu bilmeden geçmeyin!

## Sahneler
1. Görüntü: konuya ait çarpıcı bir kare. Seslendirme: "Bunu biliyor muydunuz?"
2. Görüntü: kısa bir açıklama yazısı. Seslendirme: "Detaylar birazdan geliyor."

## Açıklama
Yapay zeka servisine şu anda ulaşılamadı, senaryo daha sonra yeniden oluşturulabilir.

## Hashtagler
#shorts #bilgi #keşfet`,
		"en": `## Hook
Don't scroll past this!

## Scenes
1. Visual: a striking shot of the topic. Voiceover: "Did you know this?"
2. Visual: a short caption card. Voiceover: "Details coming up."

## Caption
The AI service is currently unavailable, the script can be generated again later.

## Hashtags
#shorts #learn #explore`,
	},
	TaskSocial: {
		"tr": `## Twitter/X
Yeni içeriğimiz yakında sizlerle! Takipte kalın.

## LinkedIn
Yakında paylaşacağımız içerik için çalışmaya devam ediyoruz. Görüşlerinizi yorumlarda bekliyoruz.

## Instagram
Yeni içerik çok yakında ✨ #yakında

## Facebook
Yeni içeriğimiz hazırlanıyor. Sizce hangi konuyu ele almalıyız?`,
		"en": `## Twitter/X
New content is coming soon! Stay tuned.

## LinkedIn
We are still working on the content we will share soon. Let us know your thoughts in the comments.

## Instagram
New content coming soon ✨ #comingsoon

## Facebook
Our new content is on the way. Which topic should we cover next?`,
	},
	TaskSEO: {
		"tr": `## Meta Başlık
Kapsamlı Rehber

## Meta Açıklama
Konu hakkında bilmeniz gereken temel bilgileri bu rehberde bulabilirsiniz.

## Başlık Yapısı
- H1: Kapsamlı Rehber
- H2: Temel Bilgiler
- H2: Sıkça Sorulan Sorular

## Makale
Yapay zeka servisine şu anda ulaşılamadığı için makale oluşturulamadı. Lütfen daha sonra tekrar deneyin.

## Anahtar Kelimeler
rehber, temel bilgiler, nasıl yapılır`,
		"en": `## Meta Title
Complete Guide

## Meta Description
Find the essential information you need about the topic in this guide.

## Outline
- H1: Complete Guide
- H2: The Basics
- H2: Frequently Asked Questions

## Article
The AI service is currently unavailable, so the article could not be generated. Please try again later.

## Keywords
guide, basics, how to`,
	},
}

// FallbackFor returns the static text served when the model cannot answer.
// Unknown languages use the Turkish entry.
func FallbackFor(task Task, lang string) string {
	byLang, ok := fallbacks[task]
	if !ok {
		byLang = fallbacks[TaskSummary]
	}
	if text, ok := byLang[normalizeLang(lang)]; ok {
		return text
	}
	return byLang[langTurkish]
}
